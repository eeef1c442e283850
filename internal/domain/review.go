package domain

import "time"

// Score bounds for reviews.
const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's scored opinion of a title. One per (title, author).
type Review struct {
	ID             int64
	TitleID        int64
	AuthorID       int64
	AuthorUsername string
	Text           string
	Score          int
	PubDate        time.Time
}

// Comment is a reply to a review.
type Comment struct {
	ID             int64
	ReviewID       int64
	AuthorID       int64
	AuthorUsername string
	Text           string
	PubDate        time.Time
}
