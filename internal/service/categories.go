package service

import (
	"context"
	"log/slog"

	"github.com/yamdb/yamdb-server/internal/access"
	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/util"
	"github.com/yamdb/yamdb-server/internal/validation"
)

// SlugNamedRequest creates a category or genre. An empty slug is derived from
// the name.
type SlugNamedRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (r *SlugNamedRequest) deriveSlug() {
	if r.Slug == "" {
		r.Slug = util.Slugify(r.Name)
	}
}

func (r SlugNamedRequest) entity() domain.SlugNamedEntity {
	return domain.SlugNamedEntity{Name: r.Name, Slug: r.Slug}
}

// slugTaken converts a unique violation on slug into a field error.
func slugTaken(err error, what string) error {
	if _, ok := uniqueColumns(err); ok {
		return domainerrors.FieldError("slug", what+" with this slug already exists").WithCause(err)
	}
	return err
}

// CategoryService manages categories. Reads are public, writes need an administrator.
type CategoryService struct {
	store     store.CatalogueStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store store.CatalogueStore, validator *validation.Validator, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, validator: validator, logger: logger}
}

// List returns categories ordered by name.
func (s *CategoryService) List(ctx context.Context, f store.NameFilter, page store.Page) (*store.List[*domain.Category], error) {
	return s.store.ListCategories(ctx, f, page)
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, actor domain.Actor, req SlugNamedRequest) (*domain.Category, error) {
	if err := access.Check(actor, access.ActionCreate, access.Categories()); err != nil {
		return nil, err
	}
	req.deriveSlug()
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	c := &domain.Category{SlugNamedEntity: req.entity()}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, slugTaken(err, "category")
	}

	s.logger.Info("category created", "slug", c.Slug)
	return c, nil
}

// Delete removes a category. Its titles stay, uncategorised.
func (s *CategoryService) Delete(ctx context.Context, actor domain.Actor, slug string) error {
	if err := access.Check(actor, access.ActionDelete, access.Categories()); err != nil {
		return err
	}
	if err := s.store.DeleteCategory(ctx, slug); err != nil {
		return notFoundAs(err, "category not found")
	}

	s.logger.Info("category deleted", "slug", slug)
	return nil
}
