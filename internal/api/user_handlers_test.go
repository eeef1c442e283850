package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/domain"
)

func TestUsers_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	mod := ts.createUser(t, "mod", domain.RoleModerator)

	assert.Equal(t, http.StatusUnauthorized, ts.api.Get("/api/v1/users").Code)
	assert.Equal(t, http.StatusForbidden, ts.api.Get("/api/v1/users", mod).Code)
	assert.Equal(t, http.StatusForbidden, ts.api.Get("/api/v1/users/mod", mod).Code)
}

func TestUsers_CreateAndList(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.createUser(t, "admin", domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/users", admin, map[string]any{
		"username": "carol",
		"email":    "carol@example.com",
		"role":     "moderator",
		"bio":      "film buff",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	created := decode[dto.User](t, resp.Body.Bytes())
	assert.Equal(t, "moderator", created.Role)
	assert.Equal(t, "film buff", created.Bio)

	resp = ts.api.Post("/api/v1/users", admin, map[string]any{
		"username": "carol",
		"email":    "other@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, decodeError(t, resp.Body.Bytes()).Details, "username")

	resp = ts.api.Post("/api/v1/users", admin, map[string]any{
		"username": "dave",
		"email":    "dave@example.com",
		"role":     "emperor",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, decodeError(t, resp.Body.Bytes()).Details, "role")

	resp = ts.api.Get("/api/v1/users?search=car", admin)
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[dto.ListResponse[dto.User]](t, resp.Body.Bytes())
	require.Len(t, list.Results, 1)
	assert.Equal(t, "carol", list.Results[0].Username)
}

func TestUsers_AdminEditsByUsername(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.createUser(t, "admin", domain.RoleAdmin)
	ts.createUser(t, "bob", domain.RoleUser)

	resp := ts.api.Patch("/api/v1/users/bob", admin, map[string]any{"role": "moderator", "first_name": "Bob"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	u := decode[dto.User](t, resp.Body.Bytes())
	assert.Equal(t, "moderator", u.Role)
	assert.Equal(t, "Bob", u.FirstName)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/users/nobody", admin).Code)
}

func TestUsers_LastAdminIsProtected(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.createUser(t, "admin", domain.RoleAdmin)

	resp := ts.api.Patch("/api/v1/users/admin", admin, map[string]any{"role": "user"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Delete("/api/v1/users/admin", admin)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestMe_CannotChangeOwnRole(t *testing.T) {
	ts := setupTestServer(t)
	bob := ts.createUser(t, "bob", domain.RoleUser)

	resp := ts.api.Patch("/api/v1/users/me", bob, map[string]any{"role": "admin"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, decodeError(t, resp.Body.Bytes()).Details, "role")

	resp = ts.api.Patch("/api/v1/users/me", bob, map[string]any{"role": "user", "bio": "hello"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	u := decode[dto.User](t, resp.Body.Bytes())
	assert.Equal(t, "user", u.Role)
	assert.Equal(t, "hello", u.Bio)
}

func TestMe_RequiresAuthentication(t *testing.T) {
	ts := setupTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.api.Get("/api/v1/users/me").Code)
	assert.Equal(t, http.StatusUnauthorized, ts.api.Patch("/api/v1/users/me", map[string]any{"bio": "x"}).Code)
}
