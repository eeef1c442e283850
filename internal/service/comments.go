package service

import (
	"context"
	"log/slog"

	"github.com/yamdb/yamdb-server/internal/access"
	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/validation"
)

// CommentService manages comments on a review. Every call checks that the
// review belongs to the title in the path.
type CommentService struct {
	store     store.ReviewStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.ReviewStore, validator *validation.Validator, logger *slog.Logger) *CommentService {
	return &CommentService{store: store, validator: validator, logger: logger}
}

// CommentRequest creates a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CommentPatch partially updates a comment.
type CommentPatch struct {
	Text *string `json:"text" validate:"omitnil,required"`
}

// List returns the review's comments, newest first.
func (s *CommentService) List(ctx context.Context, titleID, reviewID int64, page store.Page) (*store.List[*domain.Comment], error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.store.ListComments(ctx, reviewID, page)
}

// Get returns one comment.
func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*domain.Comment, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c, err := s.store.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, notFoundAs(err, "comment not found")
	}
	return c, nil
}

// Create adds the caller's comment.
func (s *CommentService) Create(ctx context.Context, actor domain.Actor, titleID, reviewID int64, req CommentRequest) (*domain.Comment, error) {
	if err := access.Check(actor, access.ActionCreate, access.Comment(0)); err != nil {
		return nil, err
	}
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ReviewID:       reviewID,
		AuthorID:       actor.ID(),
		AuthorUsername: actor.User.Username,
		Text:           req.Text,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment created", "comment_id", c.ID, "review_id", reviewID, "author", actor.User.Username)
	return c, nil
}

// Update edits a comment. Only its author, moderators and administrators may.
func (s *CommentService) Update(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID int64, patch CommentPatch) (*domain.Comment, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, access.ActionUpdate, access.Comment(c.AuthorID)); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&patch); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		c.Text = *patch.Text
	}
	if err := s.store.UpdateComment(ctx, c); err != nil {
		return nil, notFoundAs(err, "comment not found")
	}
	return c, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID int64) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	c, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := access.Check(actor, access.ActionDelete, access.Comment(c.AuthorID)); err != nil {
		return err
	}
	if err := s.store.DeleteComment(ctx, reviewID, commentID); err != nil {
		return notFoundAs(err, "comment not found")
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "by", actor.User.Username)
	return nil
}

func (s *CommentService) reviewExists(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.store.GetReview(ctx, titleID, reviewID); err != nil {
		return notFoundAs(err, "review not found")
	}
	return nil
}
