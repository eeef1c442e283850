package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yamdb/yamdb-server/internal/access"
	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/validation"
)

const duplicateReviewMessage = "you have already reviewed this title"

// ReviewService manages reviews under a title.
type ReviewService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ReviewService {
	return &ReviewService{store: store, validator: validator, logger: logger}
}

// ReviewRequest creates a review. The author is always the caller.
type ReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

// ReviewPatch partially updates a review.
type ReviewPatch struct {
	Text  *string `json:"text" validate:"omitnil,required"`
	Score *int    `json:"score" validate:"omitnil,gte=1,lte=10"`
}

// List returns the title's reviews, newest first.
func (s *ReviewService) List(ctx context.Context, titleID int64, page store.Page) (*store.List[*domain.Review], error) {
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, err
	}
	return s.store.ListReviews(ctx, titleID, page)
}

// Get returns one review of the title.
func (s *ReviewService) Get(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	r, err := s.store.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFoundAs(err, "review not found")
	}
	return r, nil
}

// Create adds the caller's review. A second review of the same title by the
// same author is a DUPLICATE error.
func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, titleID int64, req ReviewRequest) (*domain.Review, error) {
	if err := access.Check(actor, access.ActionCreate, access.Review(0)); err != nil {
		return nil, err
	}
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	exists, err := s.store.HasReview(ctx, titleID, actor.ID())
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, domainerrors.Duplicate(duplicateReviewMessage)
	}

	r := &domain.Review{
		TitleID:        titleID,
		AuthorID:       actor.ID(),
		AuthorUsername: actor.User.Username,
		Text:           req.Text,
		Score:          req.Score,
	}
	if err := s.store.CreateReview(ctx, r); err != nil {
		if _, ok := uniqueColumns(err); ok {
			return nil, domainerrors.Duplicate(duplicateReviewMessage).WithCause(err)
		}
		return nil, err
	}

	s.logger.Info("review created", "review_id", r.ID, "title_id", titleID, "author", actor.User.Username)
	return r, nil
}

// Update edits a review. Only its author, moderators and administrators may.
func (s *ReviewService) Update(ctx context.Context, actor domain.Actor, titleID, reviewID int64, patch ReviewPatch) (*domain.Review, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	r, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, access.ActionUpdate, access.Review(r.AuthorID)); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&patch); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		r.Text = *patch.Text
	}
	if patch.Score != nil {
		r.Score = *patch.Score
	}
	if err := s.store.UpdateReview(ctx, r); err != nil {
		return nil, notFoundAs(err, "review not found")
	}
	return r, nil
}

// Delete removes a review and its comments.
func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID int64) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	r, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := access.Check(actor, access.ActionDelete, access.Review(r.AuthorID)); err != nil {
		return err
	}
	if err := s.store.DeleteReview(ctx, titleID, reviewID); err != nil {
		return notFoundAs(err, "review not found")
	}

	s.logger.Info("review deleted", "review_id", reviewID, "by", actor.User.Username)
	return nil
}

func (s *ReviewService) titleExists(ctx context.Context, titleID int64) error {
	if _, err := s.store.GetTitle(ctx, titleID); err != nil {
		return notFoundAs(err, "title not found")
	}
	return nil
}
