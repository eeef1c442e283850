package sqlite

import (
	"context"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

// CreateGenre inserts a genre and sets its ID.
// Returns store.ErrAlreadyExists if the slug is taken.
func (s *Store) CreateGenre(ctx context.Context, g *domain.Genre) error {
	id, err := genresTable.create(ctx, s, &g.SlugNamedEntity)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

// GetGenreBySlug retrieves a genre by slug.
func (s *Store) GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	id, e, err := genresTable.getBySlug(ctx, s, slug)
	if err != nil {
		return nil, err
	}
	return &domain.Genre{ID: id, SlugNamedEntity: e}, nil
}

// DeleteGenre removes a genre. Association rows stay with a NULL genre.
func (s *Store) DeleteGenre(ctx context.Context, slug string) error {
	return genresTable.delete(ctx, s, slug)
}

// ListGenres returns genres ordered by name.
func (s *Store) ListGenres(ctx context.Context, f store.NameFilter, page store.Page) (*store.List[*domain.Genre], error) {
	page = page.Normalize()
	rows, total, err := genresTable.list(ctx, s, f, page)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Genre, 0, len(rows))
	for _, r := range rows {
		items = append(items, &domain.Genre{ID: r.id, SlugNamedEntity: r.SlugNamedEntity})
	}
	return store.NewList(items, total, page), nil
}
