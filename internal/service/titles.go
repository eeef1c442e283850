package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yamdb/yamdb-server/internal/access"
	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/validation"
)

// TitleService manages titles and resolves their category and genre slugs.
type TitleService struct {
	store     store.CatalogueStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTitleService creates a new title service.
func NewTitleService(store store.CatalogueStore, validator *validation.Validator, logger *slog.Logger) *TitleService {
	return &TitleService{store: store, validator: validator, logger: logger}
}

// TitleRequest creates a title. Category and genres are given by slug.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=250"`
	Year        int      `json:"year" validate:"required,gte=1000,notfuture"`
	Description string   `json:"description"`
	Genre       []string `json:"genre" validate:"dive,required,max=50"`
	Category    string   `json:"category" validate:"omitempty,max=50"`
}

// TitlePatch partially updates a title. Nil fields are unchanged; an empty
// category clears it and a non-nil genre list replaces the current one.
type TitlePatch struct {
	Name        *string  `json:"name" validate:"omitnil,required,max=250"`
	Year        *int     `json:"year" validate:"omitnil,gte=1000,notfuture"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"omitempty,dive,required,max=50"`
	Category    *string  `json:"category" validate:"omitnil,max=50"`
}

// List returns titles ordered by name and year.
func (s *TitleService) List(ctx context.Context, f store.TitleFilter, page store.Page) (*store.List[*domain.Title], error) {
	return s.store.ListTitles(ctx, f, page)
}

// Get returns a title with its rating.
func (s *TitleService) Get(ctx context.Context, id int64) (*domain.Title, error) {
	t, err := s.store.GetTitle(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "title not found")
	}
	return t, nil
}

// Create adds a title.
func (s *TitleService) Create(ctx context.Context, actor domain.Actor, req TitleRequest) (*domain.Title, error) {
	if err := access.Check(actor, access.ActionCreate, access.Titles()); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	w, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	t, err := s.store.CreateTitle(ctx, w)
	if err != nil {
		return nil, titleConflict(err)
	}

	s.logger.Info("title created", "title_id", t.ID, "name", t.Name)
	return t, nil
}

// Update applies a partial update.
func (s *TitleService) Update(ctx context.Context, actor domain.Actor, id int64, patch TitlePatch) (*domain.Title, error) {
	if err := access.Check(actor, access.ActionUpdate, access.Titles()); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&patch); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req := TitleRequest{
		Name:        current.Name,
		Year:        current.Year,
		Description: current.Description,
		Genre:       current.GenreSlugs(),
		Category:    current.CategorySlug(),
	}
	if patch.Name != nil {
		req.Name = *patch.Name
	}
	if patch.Year != nil {
		req.Year = *patch.Year
	}
	if patch.Description != nil {
		req.Description = *patch.Description
	}
	if patch.Genre != nil {
		req.Genre = patch.Genre
	}
	if patch.Category != nil {
		req.Category = *patch.Category
	}

	w, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	t, err := s.store.UpdateTitle(ctx, id, w)
	if err != nil {
		return nil, titleConflict(notFoundAs(err, "title not found"))
	}

	s.logger.Info("title updated", "title_id", t.ID)
	return t, nil
}

// Delete removes a title with its reviews and comments.
func (s *TitleService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := access.Check(actor, access.ActionDelete, access.Titles()); err != nil {
		return err
	}
	if err := s.store.DeleteTitle(ctx, id); err != nil {
		return notFoundAs(err, "title not found")
	}

	s.logger.Info("title deleted", "title_id", id)
	return nil
}

// resolve turns slugs into ids, reporting unknown ones as field errors.
func (s *TitleService) resolve(ctx context.Context, req TitleRequest) (store.TitleWrite, error) {
	w := store.TitleWrite{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}
	details := map[string]string{}

	if req.Category != "" {
		c, err := s.store.GetCategoryBySlug(ctx, req.Category)
		switch {
		case errors.Is(err, store.ErrNotFound):
			details["category"] = fmt.Sprintf("category %q does not exist", req.Category)
		case err != nil:
			return w, err
		default:
			w.CategoryID = &c.ID
		}
	}

	for _, slug := range req.Genre {
		g, err := s.store.GetGenreBySlug(ctx, slug)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if _, seen := details["genre"]; !seen {
				details["genre"] = fmt.Sprintf("genre %q does not exist", slug)
			}
		case err != nil:
			return w, err
		default:
			w.GenreIDs = append(w.GenreIDs, g.ID)
		}
	}

	if len(details) > 0 {
		return w, domainerrors.ValidationWithDetails("validation failed", details)
	}
	return w, nil
}

func titleConflict(err error) error {
	if _, ok := uniqueColumns(err); ok {
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			domainerrors.NonFieldKey: "a title with this name already exists in this category",
		}).WithCause(err)
	}
	return err
}
