package service

import (
	"context"
	"log/slog"

	"github.com/yamdb/yamdb-server/internal/access"
	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/validation"
)

// GenreService manages genres.
type GenreService struct {
	store     store.CatalogueStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewGenreService creates a new genre service.
func NewGenreService(store store.CatalogueStore, validator *validation.Validator, logger *slog.Logger) *GenreService {
	return &GenreService{store: store, validator: validator, logger: logger}
}

// List returns genres ordered by name.
func (s *GenreService) List(ctx context.Context, f store.NameFilter, page store.Page) (*store.List[*domain.Genre], error) {
	return s.store.ListGenres(ctx, f, page)
}

// Create adds a genre.
func (s *GenreService) Create(ctx context.Context, actor domain.Actor, req SlugNamedRequest) (*domain.Genre, error) {
	if err := access.Check(actor, access.ActionCreate, access.Genres()); err != nil {
		return nil, err
	}
	req.deriveSlug()
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	g := &domain.Genre{SlugNamedEntity: req.entity()}
	if err := s.store.CreateGenre(ctx, g); err != nil {
		return nil, slugTaken(err, "genre")
	}

	s.logger.Info("genre created", "slug", g.Slug)
	return g, nil
}

// Delete removes a genre. Titles keep their other genres.
func (s *GenreService) Delete(ctx context.Context, actor domain.Actor, slug string) error {
	if err := access.Check(actor, access.ActionDelete, access.Genres()); err != nil {
		return err
	}
	if err := s.store.DeleteGenre(ctx, slug); err != nil {
		return notFoundAs(err, "genre not found")
	}

	s.logger.Info("genre deleted", "slug", slug)
	return nil
}
