package auth

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/domain"
)

func newTestKeys(t *testing.T) *Keys {
	t.Helper()
	secret := make([]byte, secretLength)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	keys, err := DeriveKeys(secret)
	require.NoError(t, err)
	return keys
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(newTestKeys(t), time.Hour)
	user := &domain.User{ID: 42, Username: "alice"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.Contains(t, token, "v4.public.")

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(newTestKeys(t), time.Hour)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateAccessToken(&domain.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignKey(t *testing.T) {
	issuer := NewTokenService(newTestKeys(t), time.Hour)
	verifier := NewTokenService(newTestKeys(t), time.Hour)

	token, err := issuer.GenerateAccessToken(&domain.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService(newTestKeys(t), time.Hour)

	for _, tok := range []string{"", "not-a-token", "v4.public.AAAA"} {
		_, err := svc.VerifyAccessToken(tok)
		assert.Error(t, err, "token %q", tok)
	}
}
