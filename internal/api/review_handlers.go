package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/titles/{title_id}/reviews",
		Summary:     "List reviews",
		Description: "Lists the reviews of a title, newest first",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/titles/{title_id}/reviews",
		Summary:       "Create review",
		Description:   "Reviews a title as the authenticated user. One review per title and author.",
		Tags:          []string{"Reviews"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReview",
		Method:      http.MethodGet,
		Path:        "/api/v1/titles/{title_id}/reviews/{review_id}",
		Summary:     "Get review",
		Description: "Returns a review of the title",
		Tags:        []string{"Reviews"},
	}, s.handleGetReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPatch,
		Path:        "/api/v1/titles/{title_id}/reviews/{review_id}",
		Summary:     "Update review",
		Description: "Partially updates a review. Author, moderators and administrators only.",
		Tags:        []string{"Reviews"},
		Security:    bearer,
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteReview",
		Method:        http.MethodDelete,
		Path:          "/api/v1/titles/{title_id}/reviews/{review_id}",
		Summary:       "Delete review",
		Description:   "Deletes a review with its comments. Author, moderators and administrators only.",
		Tags:          []string{"Reviews"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteReview)
}

// === DTOs ===

type ListReviewsInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	dto.PaginationParams
}

type ListReviewsOutput struct {
	Body dto.ListResponse[dto.Review]
}

type CreateReviewInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	Body          dto.ReviewRequest
}

type ReviewPathInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	ReviewID      int64  `path:"review_id" doc:"Review ID"`
}

type UpdateReviewInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	ReviewID      int64  `path:"review_id" doc:"Review ID"`
	Body          dto.ReviewPatchRequest
}

type ReviewOutput struct {
	Body dto.Review
}

// === Handlers ===

func (s *Server) handleListReviews(ctx context.Context, input *ListReviewsInput) (*ListReviewsOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	reviews, err := s.services.Reviews.List(ctx, input.TitleID, input.Page())
	if err != nil {
		return nil, err
	}

	return &ListReviewsOutput{Body: dto.NewList(reviews, dto.NewReview)}, nil
}

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	r, err := s.services.Reviews.Create(ctx, actor, input.TitleID, service.ReviewRequest{
		Text:  input.Body.Text,
		Score: input.Body.Score,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: dto.NewReview(r)}, nil
}

func (s *Server) handleGetReview(ctx context.Context, input *ReviewPathInput) (*ReviewOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	r, err := s.services.Reviews.Get(ctx, input.TitleID, input.ReviewID)
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: dto.NewReview(r)}, nil
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	r, err := s.services.Reviews.Update(ctx, actor, input.TitleID, input.ReviewID, service.ReviewPatch{
		Text:  input.Body.Text,
		Score: input.Body.Score,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: dto.NewReview(r)}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *ReviewPathInput) (*NoContentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Reviews.Delete(ctx, actor, input.TitleID, input.ReviewID); err != nil {
		return nil, err
	}

	return &NoContentOutput{}, nil
}
