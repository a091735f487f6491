package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetrack/pkg/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestIssueAndParsePair(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("ops@example.com", models.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", access.Subject)
	assert.Equal(t, models.RoleManager, access.Role)
	assert.False(t, access.Refresh)

	refresh, err := m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", refresh.Subject)
	assert.True(t, refresh.Refresh)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("ops@example.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongKind)

	_, err = m.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)

	pair, err := m.IssuePair("ops@example.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = m.ParseRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager("different-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := m.IssuePair("ops@example.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
