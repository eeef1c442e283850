package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/api/dto"
)

func (ts *testServer) lastCode(t *testing.T) string {
	t.Helper()
	msg, ok := ts.mailer.Last()
	require.True(t, ok, "expected a confirmation mail")
	code, found := strings.CutPrefix(msg.Body, "Your confirmation code: ")
	require.True(t, found, "unexpected body %q", msg.Body)
	return code
}

func TestSignup_SendsCodeAndExchangesToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	signup := decode[dto.SignupResponse](t, resp.Body.Bytes())
	assert.Equal(t, "alice", signup.Username)
	assert.Equal(t, "alice@example.com", signup.Email)

	require.Len(t, ts.mailer.Messages(), 1)
	assert.Equal(t, []string{"alice@example.com"}, ts.mailer.Messages()[0].To)

	resp = ts.api.Post("/api/v1/auth/token", map[string]any{
		"username":          "alice",
		"confirmation_code": ts.lastCode(t),
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	token := decode[dto.TokenResponse](t, resp.Body.Bytes()).Token
	require.NotEmpty(t, token)

	resp = ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)
	me := decode[dto.User](t, resp.Body.Bytes())
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "user", me.Role)
}

func TestSignup_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{"reserved username", map[string]any{"username": "me", "email": "me@example.com"}, "username"},
		{"reserved username any case", map[string]any{"username": "ME", "email": "me@example.com"}, "username"},
		{"missing email", map[string]any{"username": "bob"}, "email"},
		{"bad email", map[string]any{"username": "bob", "email": "nope"}, "email"},
		{"bad username chars", map[string]any{"username": "bob smith", "email": "bob@example.com"}, "username"},
		{"wrong type", map[string]any{"username": 42, "email": "bob@example.com"}, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/auth/signup", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

			e := decodeError(t, resp.Body.Bytes())
			assert.Equal(t, "VALIDATION", e.Code)
			assert.Contains(t, e.Details, tt.wantField)
		})
	}

	assert.Empty(t, ts.mailer.Messages())
}

func TestSignup_RepeatResendsCode(t *testing.T) {
	ts := setupTestServer(t)
	body := map[string]any{"username": "alice", "email": "alice@example.com"}

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/auth/signup", body).Code)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/auth/signup", body).Code)

	assert.Len(t, ts.mailer.Messages(), 2)
}

func TestSignup_EmailTakenByOtherUser(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": "alice", "email": "alice@example.com",
	}).Code)

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": "mallory", "email": "alice@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Len(t, ts.mailer.Messages(), 1)
}

func TestToken_Errors(t *testing.T) {
	ts := setupTestServer(t)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": "alice", "email": "alice@example.com",
	}).Code)

	t.Run("wrong code", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/auth/token", map[string]any{
			"username": "alice", "confirmation_code": "wrong",
		})
		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, decodeError(t, resp.Body.Bytes()).Details, "confirmation_code")
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/auth/token", map[string]any{
			"username": "nobody", "confirmation_code": "whatever",
		})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/auth/token", map[string]any{})
		require.Equal(t, http.StatusBadRequest, resp.Code)
		e := decodeError(t, resp.Body.Bytes())
		assert.Contains(t, e.Details, "username")
		assert.Contains(t, e.Details, "confirmation_code")
	})
}

func TestToken_CodeIsSingleUse(t *testing.T) {
	ts := setupTestServer(t)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": "alice", "email": "alice@example.com",
	}).Code)
	body := map[string]any{"username": "alice", "confirmation_code": ts.lastCode(t)}

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/auth/token", body).Code)
	assert.Equal(t, http.StatusBadRequest, ts.api.Post("/api/v1/auth/token", body).Code)
}

func TestPublicKey(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/public-key")
	require.Equal(t, http.StatusOK, resp.Code)

	key := decode[dto.PublicKeyResponse](t, resp.Body.Bytes())
	assert.Equal(t, "v4", key.Version)
	assert.Equal(t, "public", key.Purpose)
	assert.Len(t, key.Key, 64)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		want   string
	}{
		{"ipv4 with port", "192.0.2.1:1234", "192.0.2.1"},
		{"ipv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"no port", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clientIP(tt.remote))
		})
	}
}
