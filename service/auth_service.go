package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"safetrack/config"
	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/mailer"
	"safetrack/pkg/models"
	"safetrack/pkg/password"
	"safetrack/pkg/token"
	"safetrack/storage"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, plainPassword string) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error
}

type authService struct {
	users  storage.IUserStorage
	tokens *token.Manager
	mail   mailer.Mailer
	cfg    config.Config
	log    logger.ILogger
}

func NewAuthService(stg storage.IStorage, tokens *token.Manager, mail mailer.Mailer, cfg config.Config, log logger.ILogger) AuthService {
	return &authService{
		users:  stg.User(),
		tokens: tokens,
		mail:   mail,
		cfg:    cfg,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}
	if !req.Role.Valid() {
		return nil, apperrors.Validation("unknown role %q", req.Role)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Active:       true,
	}
	// Duplicate emails are caught by the store's unique constraint, so two
	// concurrent registrations cannot both win.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", logger.String("email", created.Email), logger.String("role", string(created.Role)))
	return created, nil
}

func (s *authService) Login(ctx context.Context, email, plainPassword string) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperrors.Authentication("invalid credentials")
	}
	if err := password.Check(user.PasswordHash, plainPassword); err != nil {
		return nil, apperrors.Authentication("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	s.log.Info("user logged in", logger.String("email", user.Email))
	return &models.AuthResponse{TokenPair: pair, Email: user.Email, Role: user.Role}, nil
}

// Refresh validates the presented refresh token, re-resolves its subject
// and issues a fresh pair. Both tokens rotate on every call.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.Authentication("refresh token is invalid or expired")
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperrors.Authentication("refresh token subject cannot be resolved")
	}

	pair, err := s.tokens.IssuePair(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{TokenPair: pair, Email: user.Email, Role: user.Role}, nil
}

func (s *authService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("user %s", email)
	}
	if err := password.Check(user.PasswordHash, oldPassword); err != nil {
		return apperrors.Authentication("current password is incorrect")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	s.log.Info("password changed", logger.String("email", email))
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("user with email %s", email)
	}

	resetToken := uuid.NewString()
	expiry := time.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, resetToken, expiry); err != nil {
		return err
	}

	resetURL := s.cfg.ResetBaseURL + "?token=" + resetToken
	s.mail.SendPasswordReset(user.Email, user.Name, resetURL)
	s.log.Info("password reset link issued", logger.String("email", email))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperrors.Validation("passwords do not match")
	}

	user, err := s.users.GetByResetToken(ctx, resetToken)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.Validation("reset token is invalid")
	}
	if user.ResetExpiry == nil || user.ResetExpiry.Before(time.Now()) {
		_ = s.users.ClearResetToken(ctx, user.ID)
		return apperrors.Validation("reset token has expired")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}
	s.log.Info("password reset completed", logger.String("email", user.Email))
	return nil
}
