package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
)

func TestUserService_AdministratorOnly(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	plain := env.user(t, "plain", domain.RoleUser)
	mod := env.user(t, "mod", domain.RoleModerator)

	_, err := env.users.List(ctx, domain.Anonymous(), store.UserFilter{}, store.Page{})
	requireCode(t, err, domainerrors.CodeUnauthorized)

	for _, actor := range []domain.Actor{plain, mod} {
		_, err = env.users.List(ctx, actor, store.UserFilter{}, store.Page{})
		requireCode(t, err, domainerrors.CodeForbidden)

		_, err = env.users.Get(ctx, actor, "plain")
		requireCode(t, err, domainerrors.CodeForbidden)
	}
}

func TestUserService_CreateAndDuplicates(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)

	u, err := env.users.Create(ctx, admin, CreateUserRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, u.Role)
	assert.False(t, u.Confirmed)

	_, err = env.users.Create(ctx, admin, CreateUserRequest{Username: "carol", Email: "new@example.com"})
	requireField(t, err, "username")

	_, err = env.users.Create(ctx, admin, CreateUserRequest{Username: "dave", Email: "carol@example.com"})
	requireField(t, err, "email")
}

func TestUserService_CreateRejectsBadInput(t *testing.T) {
	env := setupTest(t)
	admin := env.user(t, "admin", domain.RoleAdmin)

	tests := []struct {
		name  string
		req   CreateUserRequest
		field string
	}{
		{"reserved username", CreateUserRequest{Username: "Me", Email: "me@example.com"}, "username"},
		{"bad characters", CreateUserRequest{Username: "a b", Email: "ab@example.com"}, "username"},
		{"bad email", CreateUserRequest{Username: "erin", Email: "not-an-email"}, "email"},
		{"unknown role", CreateUserRequest{Username: "erin", Email: "erin@example.com", Role: "owner"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Create(context.Background(), admin, tt.req)
			requireField(t, err, tt.field)
		})
	}
}

func TestUserService_UpdateMe_RoleRules(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	plain := env.user(t, "plain", domain.RoleUser)

	_, err := env.users.UpdateMe(ctx, plain, UpdateUserRequest{Role: ptr("admin")})
	requireField(t, err, "role")

	u, err := env.users.UpdateMe(ctx, plain, UpdateUserRequest{Role: ptr("user"), Bio: ptr("hello")})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, "hello", u.Bio)

	_, err = env.users.UpdateMe(ctx, domain.Anonymous(), UpdateUserRequest{Bio: ptr("x")})
	requireCode(t, err, domainerrors.CodeUnauthorized)
}

func TestUserService_LastAdministratorGuard(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)

	_, err := env.users.UpdateMe(ctx, admin, UpdateUserRequest{Role: ptr("user")})
	requireCode(t, err, domainerrors.CodeConflict)

	err = env.users.Delete(ctx, admin, "admin")
	requireCode(t, err, domainerrors.CodeConflict)

	env.user(t, "second", domain.RoleAdmin)
	u, err := env.users.UpdateMe(ctx, admin, UpdateUserRequest{Role: ptr("moderator")})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, u.Role)
}

func TestUserService_DeleteCascadesContent(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)
	writer := env.user(t, "writer", domain.RoleUser)
	title := env.title(t, "Dune")

	r, err := env.reviews.Create(ctx, writer, title.ID, ReviewRequest{Text: "great", Score: 9})
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, admin, "writer"))

	_, err = env.reviews.Get(ctx, title.ID, r.ID)
	requireCode(t, err, domainerrors.CodeNotFound)

	err = env.users.Delete(ctx, admin, "writer")
	requireCode(t, err, domainerrors.CodeNotFound)
}
