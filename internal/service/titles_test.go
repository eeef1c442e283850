package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
)

func seedCatalogue(t *testing.T, env *testEnv, admin domain.Actor) {
	t.Helper()
	ctx := context.Background()
	for _, req := range []SlugNamedRequest{{Name: "Books", Slug: "books"}, {Name: "Films", Slug: "films"}} {
		_, err := env.cats.Create(ctx, admin, req)
		require.NoError(t, err)
	}
	for _, req := range []SlugNamedRequest{{Name: "Drama", Slug: "drama"}, {Name: "Sci-Fi", Slug: "sci-fi"}} {
		_, err := env.genres.Create(ctx, admin, req)
		require.NoError(t, err)
	}
}

func TestCategoryService_WritesNeedAdministrator(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	mod := env.user(t, "mod", domain.RoleModerator)
	admin := env.user(t, "admin", domain.RoleAdmin)

	_, err := env.cats.Create(ctx, domain.Anonymous(), SlugNamedRequest{Name: "Books", Slug: "books"})
	requireCode(t, err, domainerrors.CodeUnauthorized)

	_, err = env.cats.Create(ctx, mod, SlugNamedRequest{Name: "Books", Slug: "books"})
	requireCode(t, err, domainerrors.CodeForbidden)

	c, err := env.cats.Create(ctx, admin, SlugNamedRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)
	assert.Equal(t, "books", c.Slug)

	_, err = env.cats.Create(ctx, admin, SlugNamedRequest{Name: "More books", Slug: "books"})
	requireField(t, err, "slug")

	_, err = env.cats.Create(ctx, admin, SlugNamedRequest{Name: "Bad", Slug: "no spaces"})
	requireField(t, err, "slug")

	list, err := env.cats.List(ctx, store.NameFilter{Search: "boo"}, store.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	require.NoError(t, env.cats.Delete(ctx, admin, "books"))
	err = env.cats.Delete(ctx, admin, "books")
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestGenreService_CreateDelete(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)

	_, err := env.genres.Create(ctx, admin, SlugNamedRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)
	_, err = env.genres.Create(ctx, admin, SlugNamedRequest{Name: "Drama again", Slug: "drama"})
	requireField(t, err, "slug")

	err = env.genres.Delete(ctx, env.user(t, "plain", domain.RoleUser), "drama")
	requireCode(t, err, domainerrors.CodeForbidden)
	require.NoError(t, env.genres.Delete(ctx, admin, "drama"))
}

func TestTitleService_CreateResolvesSlugs(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)
	seedCatalogue(t, env, admin)

	title, err := env.titles.Create(ctx, admin, TitleRequest{
		Name:     "Dune",
		Year:     1965,
		Genre:    []string{"sci-fi", "drama"},
		Category: "books",
	})
	require.NoError(t, err)
	assert.Equal(t, "books", title.CategorySlug())
	assert.ElementsMatch(t, []string{"sci-fi", "drama"}, title.GenreSlugs())
	assert.Nil(t, title.Rating)

	_, err = env.titles.Create(ctx, admin, TitleRequest{Name: "X", Year: 2000, Category: "music"})
	requireField(t, err, "category")

	_, err = env.titles.Create(ctx, admin, TitleRequest{Name: "X", Year: 2000, Genre: []string{"drama", "horror"}})
	requireField(t, err, "genre")

	_, err = env.titles.Create(ctx, admin, TitleRequest{Name: "Dune", Year: 1984, Category: "books"})
	de := requireCode(t, err, domainerrors.CodeValidation)
	_, ok := de.Field(domainerrors.NonFieldKey)
	assert.True(t, ok)

	// Same name in another category is a different title.
	_, err = env.titles.Create(ctx, admin, TitleRequest{Name: "Dune", Year: 1984, Category: "films"})
	require.NoError(t, err)
}

func TestTitleService_YearBounds(t *testing.T) {
	env := setupTest(t)
	admin := env.user(t, "admin", domain.RoleAdmin)
	next := time.Now().Year() + 1

	for _, year := range []int{0, 999, next} {
		_, err := env.titles.Create(context.Background(), admin, TitleRequest{Name: "Future", Year: year})
		requireField(t, err, "year")
	}
}

func TestTitleService_Update(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)
	seedCatalogue(t, env, admin)

	title, err := env.titles.Create(ctx, admin, TitleRequest{
		Name: "Dune", Year: 1965, Description: "desert", Genre: []string{"sci-fi"}, Category: "books",
	})
	require.NoError(t, err)

	updated, err := env.titles.Update(ctx, admin, title.ID, TitlePatch{Year: ptr(1966)})
	require.NoError(t, err)
	assert.Equal(t, 1966, updated.Year)
	assert.Equal(t, "desert", updated.Description)
	assert.Equal(t, "books", updated.CategorySlug())
	assert.Equal(t, []string{"sci-fi"}, updated.GenreSlugs())

	updated, err = env.titles.Update(ctx, admin, title.ID, TitlePatch{Genre: []string{"drama"}, Category: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	assert.Equal(t, []string{"drama"}, updated.GenreSlugs())

	_, err = env.titles.Update(ctx, admin, 9999, TitlePatch{Year: ptr(1966)})
	requireCode(t, err, domainerrors.CodeNotFound)

	_, err = env.titles.Update(ctx, env.user(t, "plain", domain.RoleUser), title.ID, TitlePatch{Year: ptr(1966)})
	requireCode(t, err, domainerrors.CodeForbidden)
}

func TestTitleService_Delete(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)
	title := env.title(t, "Dune")

	err := env.titles.Delete(ctx, domain.Anonymous(), title.ID)
	requireCode(t, err, domainerrors.CodeUnauthorized)

	require.NoError(t, env.titles.Delete(ctx, admin, title.ID))
	_, err = env.titles.Get(ctx, title.ID)
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestGenreService_DerivesSlugFromName(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	admin := env.user(t, "admin", domain.RoleAdmin)

	g, err := env.genres.Create(ctx, admin, SlugNamedRequest{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", g.Slug)

	_, err = env.genres.Create(ctx, admin, SlugNamedRequest{Name: "🎬"})
	requireField(t, err, "slug")
}
