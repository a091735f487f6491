package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetrack/config"
	"safetrack/pkg/apperrors"
	"safetrack/pkg/models"
	"safetrack/pkg/token"
)

type captureMailer struct {
	resetURLs []string
}

func (c *captureMailer) SendPasswordReset(toAddress, recipientName, resetURL string) {
	c.resetURLs = append(c.resetURLs, resetURL)
}

func newTestAuthService(t *testing.T, stg *memStorage) (AuthService, *captureMailer) {
	t.Helper()
	tokens, err := token.NewManager("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	mail := &captureMailer{}
	cfg := config.Config{
		ResetTokenTTL: time.Hour,
		ResetBaseURL:  "https://fleet.test/reset",
	}
	return NewAuthService(stg, tokens, mail, cfg, testLogger()), mail
}

func registerTestUser(t *testing.T, svc AuthService, email string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "s3cret-pass",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	user := registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	resp, err := svc.Login(ctx, "maria@fleet.test", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleManager, resp.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "maria@fleet.test",
		Password: "another-pass",
		Role:     models.RoleAuditor,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "x@fleet.test",
		Password: "pass",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)

	// wrong password and unknown email fail identically
	_, err := svc.Login(ctx, "maria@fleet.test", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	_, err = svc.Login(ctx, "nobody@fleet.test", "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	user := registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)
	user.Active = false
	_, err := stg.users.Update(ctx, user)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "maria@fleet.test", "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestRefreshRotatesTokens(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)
	login, err := svc.Login(ctx, "maria@fleet.test", "s3cret-pass")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
	assert.Equal(t, "maria@fleet.test", refreshed.Email)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)
	login, err := svc.Login(ctx, "maria@fleet.test", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestRefreshForDeactivatedUser(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	user := registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)
	login, err := svc.Login(ctx, "maria@fleet.test", "s3cret-pass")
	require.NoError(t, err)

	user.Active = false
	_, err = stg.users.Update(ctx, user)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)

	err := svc.ChangePassword(ctx, "maria@fleet.test", "wrong-old", "new-pass")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	require.NoError(t, svc.ChangePassword(ctx, "maria@fleet.test", "s3cret-pass", "new-pass"))

	_, err = svc.Login(ctx, "maria@fleet.test", "new-pass")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "maria@fleet.test", "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, mail := newTestAuthService(t, stg)

	user := registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)

	require.NoError(t, svc.ForgotPassword(ctx, "maria@fleet.test"))
	require.Len(t, mail.resetURLs, 1)
	assert.Contains(t, mail.resetURLs[0], "https://fleet.test/reset?token=")

	stored, err := stg.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	resetToken := *stored.ResetToken

	err = svc.ResetPassword(ctx, resetToken, "brand-new", "mismatch")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.ResetPassword(ctx, resetToken, "brand-new", "brand-new"))

	_, err = svc.Login(ctx, "maria@fleet.test", "brand-new")
	assert.NoError(t, err)

	// a successful reset clears the token on the stored user
	stored, err = stg.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResetToken)

	// the token is single use
	err = svc.ResetPassword(ctx, resetToken, "again", "again")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc, _ := newTestAuthService(t, stg)

	user := registerTestUser(t, svc, "maria@fleet.test", models.RoleManager)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, stg.users.SetResetToken(ctx, user.ID, "stale-token", expired))

	err := svc.ResetPassword(ctx, "stale-token", "new-pass", "new-pass")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// the stale token was cleared on the way out
	stored, err := stg.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResetToken)
}
