package dto

import (
	"time"

	"github.com/yamdb/yamdb-server/internal/domain"
)

// Review is a review in API responses.
type Review struct {
	ID      int64     `json:"id" doc:"Review ID"`
	Author  string    `json:"author" doc:"Author username"`
	Title   int64     `json:"title" doc:"Reviewed title ID"`
	Text    string    `json:"text" doc:"Review text"`
	Score   int       `json:"score" doc:"Score from 1 to 10"`
	PubDate time.Time `json:"pub_date" doc:"Publication time"`
}

// NewReview maps a review.
func NewReview(r *domain.Review) Review {
	return Review{
		ID:      r.ID,
		Author:  r.AuthorUsername,
		Title:   r.TitleID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// ReviewRequest is the request body for creating a review.
type ReviewRequest struct {
	Text  string `json:"text,omitempty" doc:"Review text"`
	Score int    `json:"score,omitempty" doc:"Score from 1 to 10"`
}

// ReviewPatchRequest is the request body for a partial review update.
type ReviewPatchRequest struct {
	Text  *string `json:"text,omitempty" doc:"Review text"`
	Score *int    `json:"score,omitempty" doc:"Score from 1 to 10"`
}

// Comment is a comment in API responses.
type Comment struct {
	ID      int64     `json:"id" doc:"Comment ID"`
	Author  string    `json:"author" doc:"Author username"`
	Review  int64     `json:"review" doc:"Parent review ID"`
	Text    string    `json:"text" doc:"Comment text"`
	PubDate time.Time `json:"pub_date" doc:"Publication time"`
}

// NewComment maps a comment.
func NewComment(c *domain.Comment) Comment {
	return Comment{
		ID:      c.ID,
		Author:  c.AuthorUsername,
		Review:  c.ReviewID,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}

// CommentRequest is the request body for creating or updating a comment.
type CommentRequest struct {
	Text string `json:"text,omitempty" doc:"Comment text"`
}

// CommentPatchRequest is the request body for a partial comment update.
type CommentPatchRequest struct {
	Text *string `json:"text,omitempty" doc:"Comment text"`
}
