package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
	"github.com/yamdb/yamdb-server/internal/store"
)

func (s *Server) registerTitleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTitles",
		Method:      http.MethodGet,
		Path:        "/api/v1/titles",
		Summary:     "List titles",
		Description: "Lists titles with nested category, genres and rating",
		Tags:        []string{"Titles"},
	}, s.handleListTitles)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTitle",
		Method:        http.MethodPost,
		Path:          "/api/v1/titles",
		Summary:       "Create title",
		Description:   "Creates a title from category and genre slugs. Administrators only.",
		Tags:          []string{"Titles"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTitle)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTitle",
		Method:      http.MethodGet,
		Path:        "/api/v1/titles/{title_id}",
		Summary:     "Get title",
		Description: "Returns a title with nested category, genres and rating",
		Tags:        []string{"Titles"},
	}, s.handleGetTitle)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTitle",
		Method:      http.MethodPatch,
		Path:        "/api/v1/titles/{title_id}",
		Summary:     "Update title",
		Description: "Partially updates a title. Administrators only.",
		Tags:        []string{"Titles"},
		Security:    bearer,
	}, s.handleUpdateTitle)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTitle",
		Method:        http.MethodDelete,
		Path:          "/api/v1/titles/{title_id}",
		Summary:       "Delete title",
		Description:   "Deletes a title with its reviews and comments. Administrators only.",
		Tags:          []string{"Titles"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTitle)
}

// === DTOs ===

type ListTitlesInput struct {
	Authorization string `header:"Authorization"`
	Name          string `query:"name" doc:"Name substring"`
	Category      string `query:"category" doc:"Category slug"`
	Genre         string `query:"genre" doc:"Genre slug"`
	Year          int    `query:"year" doc:"Exact year"`
	dto.PaginationParams
}

type ListTitlesOutput struct {
	Body dto.ListResponse[dto.Title]
}

type CreateTitleInput struct {
	Authorization string `header:"Authorization"`
	Body          dto.TitleRequest
}

type TitlePathInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
}

type UpdateTitleInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	Body          dto.TitlePatchRequest
}

type TitleOutput struct {
	Body dto.Title
}

type TitleWriteOutput struct {
	Body dto.TitleWrite
}

// === Handlers ===

func (s *Server) handleListTitles(ctx context.Context, input *ListTitlesInput) (*ListTitlesOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	titles, err := s.services.Titles.List(ctx, store.TitleFilter{
		Name:     input.Name,
		Category: input.Category,
		Genre:    input.Genre,
		Year:     input.Year,
	}, input.Page())
	if err != nil {
		return nil, err
	}

	return &ListTitlesOutput{Body: dto.NewList(titles, dto.NewTitle)}, nil
}

func (s *Server) handleCreateTitle(ctx context.Context, input *CreateTitleInput) (*TitleWriteOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Titles.Create(ctx, actor, service.TitleRequest{
		Name:        input.Body.Name,
		Year:        input.Body.Year,
		Description: input.Body.Description,
		Genre:       input.Body.Genre,
		Category:    input.Body.Category,
	})
	if err != nil {
		return nil, err
	}

	return &TitleWriteOutput{Body: dto.NewTitleWrite(t)}, nil
}

func (s *Server) handleGetTitle(ctx context.Context, input *TitlePathInput) (*TitleOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	t, err := s.services.Titles.Get(ctx, input.TitleID)
	if err != nil {
		return nil, err
	}

	return &TitleOutput{Body: dto.NewTitle(t)}, nil
}

func (s *Server) handleUpdateTitle(ctx context.Context, input *UpdateTitleInput) (*TitleWriteOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Titles.Update(ctx, actor, input.TitleID, service.TitlePatch{
		Name:        input.Body.Name,
		Year:        input.Body.Year,
		Description: input.Body.Description,
		Genre:       input.Body.Genre,
		Category:    input.Body.Category,
	})
	if err != nil {
		return nil, err
	}

	return &TitleWriteOutput{Body: dto.NewTitleWrite(t)}, nil
}

func (s *Server) handleDeleteTitle(ctx context.Context, input *TitlePathInput) (*NoContentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Titles.Delete(ctx, actor, input.TitleID); err != nil {
		return nil, err
	}

	return &NoContentOutput{}, nil
}
