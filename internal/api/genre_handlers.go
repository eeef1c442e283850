package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
	"github.com/yamdb/yamdb-server/internal/store"
)

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Lists genres ordered by name",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createGenre",
		Method:        http.MethodPost,
		Path:          "/api/v1/genres",
		Summary:       "Create genre",
		Description:   "Creates a new genre. Administrators only.",
		Tags:          []string{"Genres"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateGenre)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteGenre",
		Method:        http.MethodDelete,
		Path:          "/api/v1/genres/{slug}",
		Summary:       "Delete genre",
		Description:   "Deletes a genre. Titles keep their other genres. Administrators only.",
		Tags:          []string{"Genres"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteGenre)
}

// === DTOs ===

// ListSlugNamedInput lists categories or genres.
type ListSlugNamedInput struct {
	Authorization string `header:"Authorization"`
	Search        string `query:"search" doc:"Name substring"`
	dto.PaginationParams
}

type ListSlugNamedOutput struct {
	Body dto.ListResponse[dto.SlugNamed]
}

type CreateSlugNamedInput struct {
	Authorization string `header:"Authorization"`
	Body          dto.SlugNamedRequest
}

type SlugNamedOutput struct {
	Body dto.SlugNamed
}

type SlugPathInput struct {
	Authorization string `header:"Authorization"`
	Slug          string `path:"slug" doc:"Slug"`
}

// === Handlers ===

func (s *Server) handleListGenres(ctx context.Context, input *ListSlugNamedInput) (*ListSlugNamedOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	genres, err := s.services.Genres.List(ctx, store.NameFilter{Search: input.Search}, input.Page())
	if err != nil {
		return nil, err
	}

	return &ListSlugNamedOutput{Body: dto.NewList(genres, dto.NewGenre)}, nil
}

func (s *Server) handleCreateGenre(ctx context.Context, input *CreateSlugNamedInput) (*SlugNamedOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	g, err := s.services.Genres.Create(ctx, actor, service.SlugNamedRequest{
		Name: input.Body.Name,
		Slug: input.Body.Slug,
	})
	if err != nil {
		return nil, err
	}

	return &SlugNamedOutput{Body: dto.NewGenre(g)}, nil
}

func (s *Server) handleDeleteGenre(ctx context.Context, input *SlugPathInput) (*NoContentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Genres.Delete(ctx, actor, input.Slug); err != nil {
		return nil, err
	}

	return &NoContentOutput{}, nil
}
