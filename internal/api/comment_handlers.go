package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
)

const commentsPath = "/api/v1/titles/{title_id}/reviews/{review_id}/comments"

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listComments",
		Method:      http.MethodGet,
		Path:        commentsPath,
		Summary:     "List comments",
		Description: "Lists the comments of a review, newest first",
		Tags:        []string{"Comments"},
	}, s.handleListComments)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createComment",
		Method:        http.MethodPost,
		Path:          commentsPath,
		Summary:       "Create comment",
		Description:   "Comments on a review as the authenticated user",
		Tags:          []string{"Comments"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "getComment",
		Method:      http.MethodGet,
		Path:        commentsPath + "/{comment_id}",
		Summary:     "Get comment",
		Description: "Returns a comment of the review",
		Tags:        []string{"Comments"},
	}, s.handleGetComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateComment",
		Method:      http.MethodPatch,
		Path:        commentsPath + "/{comment_id}",
		Summary:     "Update comment",
		Description: "Partially updates a comment. Author, moderators and administrators only.",
		Tags:        []string{"Comments"},
		Security:    bearer,
	}, s.handleUpdateComment)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteComment",
		Method:        http.MethodDelete,
		Path:          commentsPath + "/{comment_id}",
		Summary:       "Delete comment",
		Description:   "Deletes a comment. Author, moderators and administrators only.",
		Tags:          []string{"Comments"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteComment)
}

// === DTOs ===

type ListCommentsInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	ReviewID      int64  `path:"review_id" doc:"Review ID"`
	dto.PaginationParams
}

type ListCommentsOutput struct {
	Body dto.ListResponse[dto.Comment]
}

type CreateCommentInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	ReviewID      int64  `path:"review_id" doc:"Review ID"`
	Body          dto.CommentRequest
}

type CommentPathInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	ReviewID      int64  `path:"review_id" doc:"Review ID"`
	CommentID     int64  `path:"comment_id" doc:"Comment ID"`
}

type UpdateCommentInput struct {
	Authorization string `header:"Authorization"`
	TitleID       int64  `path:"title_id" doc:"Title ID"`
	ReviewID      int64  `path:"review_id" doc:"Review ID"`
	CommentID     int64  `path:"comment_id" doc:"Comment ID"`
	Body          dto.CommentPatchRequest
}

type CommentOutput struct {
	Body dto.Comment
}

// === Handlers ===

func (s *Server) handleListComments(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	comments, err := s.services.Comments.List(ctx, input.TitleID, input.ReviewID, input.Page())
	if err != nil {
		return nil, err
	}

	return &ListCommentsOutput{Body: dto.NewList(comments, dto.NewComment)}, nil
}

func (s *Server) handleCreateComment(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Comments.Create(ctx, actor, input.TitleID, input.ReviewID, service.CommentRequest{
		Text: input.Body.Text,
	})
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: dto.NewComment(c)}, nil
}

func (s *Server) handleGetComment(ctx context.Context, input *CommentPathInput) (*CommentOutput, error) {
	if _, err := s.resolveActor(ctx, input.Authorization); err != nil {
		return nil, err
	}

	c, err := s.services.Comments.Get(ctx, input.TitleID, input.ReviewID, input.CommentID)
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: dto.NewComment(c)}, nil
}

func (s *Server) handleUpdateComment(ctx context.Context, input *UpdateCommentInput) (*CommentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Comments.Update(ctx, actor, input.TitleID, input.ReviewID, input.CommentID, service.CommentPatch{
		Text: input.Body.Text,
	})
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: dto.NewComment(c)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *CommentPathInput) (*NoContentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Comments.Delete(ctx, actor, input.TitleID, input.ReviewID, input.CommentID); err != nil {
		return nil, err
	}

	return &NoContentOutput{}, nil
}
