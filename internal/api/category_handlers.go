package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
	"github.com/yamdb/yamdb-server/internal/store"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Lists categories ordered by name",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCategory",
		Method:        http.MethodPost,
		Path:          "/api/v1/categories",
		Summary:       "Create category",
		Description:   "Creates a new category. Administrators only.",
		Tags:          []string{"Categories"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteCategory",
		Method:        http.MethodDelete,
		Path:          "/api/v1/categories/{slug}",
		Summary:       "Delete category",
		Description:   "Deletes a category. Its titles become uncategorised. Administrators only.",
		Tags:          []string{"Categories"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteCategory)
}

func (s *Server) handleListCategories(ctx context.Context, input *ListSlugNamedInput) (*ListSlugNamedOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	categories, err := s.services.Categories.List(ctx, store.NameFilter{Search: input.Search}, input.Page())
	if err != nil {
		return nil, err
	}

	return &ListSlugNamedOutput{Body: dto.NewList(categories, dto.NewCategory)}, nil
}

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateSlugNamedInput) (*SlugNamedOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Categories.Create(ctx, actor, service.SlugNamedRequest{
		Name: input.Body.Name,
		Slug: input.Body.Slug,
	})
	if err != nil {
		return nil, err
	}

	return &SlugNamedOutput{Body: dto.NewCategory(c)}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *SlugPathInput) (*NoContentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Categories.Delete(ctx, actor, input.Slug); err != nil {
		return nil, err
	}

	return &NoContentOutput{}, nil
}
