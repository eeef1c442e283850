package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/auth"
	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/mail"
	"github.com/yamdb/yamdb-server/internal/ratelimit"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/store/sqlite"
	"github.com/yamdb/yamdb-server/internal/validation"
)

// testEnv wires every service against a temporary SQLite database.
type testEnv struct {
	store    *sqlite.Store
	mailer   *mail.Recorder
	codes    *auth.CodeGenerator
	tokens   *auth.TokenService
	limiter  *ratelimit.KeyedRateLimiter
	users    *UserService
	auth     *AuthService
	cats     *CategoryService
	genres   *GenreService
	titles   *TitleService
	reviews  *ReviewService
	comments *CommentService
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	secret, err := auth.LoadOrGenerateSecret(t.TempDir())
	require.NoError(t, err)
	keys, err := auth.DeriveKeys(secret)
	require.NoError(t, err)

	env := &testEnv{
		store:   s,
		mailer:  &mail.Recorder{},
		codes:   auth.NewCodeGenerator(keys, 24*time.Hour),
		tokens:  auth.NewTokenService(keys, time.Hour),
		limiter: ratelimit.New(100, 100),
	}
	t.Cleanup(env.limiter.Stop)

	v := validation.New()
	env.users = NewUserService(s, v, logger)
	env.auth = NewAuthService(s, env.codes, env.tokens, env.mailer,
		MailSettings{From: "from@example.com", Subject: "Email confirmation"}, env.limiter, v, logger)
	env.cats = NewCategoryService(s, v, logger)
	env.genres = NewGenreService(s, v, logger)
	env.titles = NewTitleService(s, v, logger)
	env.reviews = NewReviewService(s, v, logger)
	env.comments = NewCommentService(s, v, logger)
	return env
}

// user inserts an account directly and returns an actor for it.
func (e *testEnv) user(t *testing.T, username string, role domain.Role) domain.Actor {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return domain.AsUser(u)
}

// title creates a title with no category or genres.
func (e *testEnv) title(t *testing.T, name string) *domain.Title {
	t.Helper()
	title, err := e.store.CreateTitle(context.Background(), store.TitleWrite{Name: name, Year: 2000})
	require.NoError(t, err)
	return title
}

func requireCode(t *testing.T, err error, code domainerrors.Code) *domainerrors.Error {
	t.Helper()
	require.Error(t, err)
	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, code, de.Code, "unexpected error: %v", err)
	return de
}

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	de := requireCode(t, err, domainerrors.CodeValidation)
	_, ok := de.Field(field)
	require.True(t, ok, "expected error on %q, got %v", field, de.Details)
}

func ptr[T any](v T) *T {
	return &v
}
