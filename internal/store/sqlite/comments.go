package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

const commentSelect = `SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var (
		c       domain.Comment
		pubDate string
	)
	err := scanner.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.AuthorUsername, &c.Text, &pubDate)
	if err != nil {
		return nil, err
	}
	if c.PubDate, err = parseTime(pubDate); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment inserts a comment and sets its ID. pub_date defaults to now.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	if c.PubDate.IsZero() {
		c.PubDate = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (review_id, author_id, text, pub_date) VALUES (?, ?, ?, ?)`,
		c.ReviewID, c.AuthorID, c.Text, formatTime(c.PubDate))
	if err != nil {
		return err
	}
	if c.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetComment retrieves a comment that belongs to the given review.
func (s *Store) GetComment(ctx context.Context, reviewID, commentID int64) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = ? AND c.review_id = ?`, commentID, reviewID)
	c, err := scanComment(row)
	if err != nil {
		return nil, notFound(err, "comment")
	}
	return c, nil
}

// UpdateComment rewrites the comment text.
func (s *Store) UpdateComment(ctx context.Context, c *domain.Comment) error {
	return s.execAffecting(ctx, "comment",
		`UPDATE comments SET text = ? WHERE id = ? AND review_id = ?`, c.Text, c.ID, c.ReviewID)
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, reviewID, commentID int64) error {
	return s.execAffecting(ctx, "comment",
		`DELETE FROM comments WHERE id = ? AND review_id = ?`, commentID, reviewID)
}

// ListComments returns the comments on a review, newest first.
func (s *Store) ListComments(ctx context.Context, reviewID int64, page store.Page) (*store.List[*domain.Comment], error) {
	page = page.Normalize()

	total, err := s.count(ctx, `SELECT COUNT(*) FROM comments WHERE review_id = ?`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		commentSelect+` WHERE c.review_id = ? ORDER BY c.pub_date DESC, c.id DESC LIMIT ? OFFSET ?`,
		reviewID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.NewList(comments, total, page), nil
}
