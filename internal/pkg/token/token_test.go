package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return New("access-secret-for-tests", "refresh-secret-for-tests", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccess(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := New("a-completely-different-secret", "refresh-secret-for-tests", 15*time.Minute, 7*24*time.Hour)

	tok, err := svc.IssueAccess(1, "user@example.com")
	require.NoError(t, err)

	_, err = other.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_CrossNamespace(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.IssueRefresh(7, "user@example.com")
	require.NoError(t, err)
	access, err := svc.IssueAccess(7, "user@example.com")
	require.NoError(t, err)

	// A refresh token must not pass as an access token, nor the reverse.
	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := New("access-secret-for-tests", "refresh-secret-for-tests", -time.Minute, 7*24*time.Hour)

	tok, err := svc.IssueAccess(3, "user@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	svc := newTestService()

	_, err := svc.VerifyAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRefresh_Unique(t *testing.T) {
	svc := newTestService()

	first, err := svc.IssueRefresh(9, "user@example.com")
	require.NoError(t, err)
	second, err := svc.IssueRefresh(9, "user@example.com")
	require.NoError(t, err)

	// Same claims, same instant: the embedded jti keeps them distinct.
	assert.NotEqual(t, first, second)
}
