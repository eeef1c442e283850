package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

const reviewSelect = `SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
	FROM reviews r
	JOIN users u ON u.id = r.author_id`

func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var (
		r       domain.Review
		pubDate string
	)
	err := scanner.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.AuthorUsername, &r.Text, &r.Score, &pubDate)
	if err != nil {
		return nil, err
	}
	if r.PubDate, err = parseTime(pubDate); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview inserts a review and sets its ID. pub_date defaults to now.
// Returns store.ErrAlreadyExists when the author already reviewed the title.
func (s *Store) CreateReview(ctx context.Context, r *domain.Review) error {
	if r.PubDate.IsZero() {
		r.PubDate = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (title_id, author_id, text, score, pub_date) VALUES (?, ?, ?, ?, ?)`,
		r.TitleID, r.AuthorID, r.Text, r.Score, formatTime(r.PubDate))
	if err != nil {
		return uniqueViolation(err)
	}
	if r.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetReview retrieves a review that belongs to the given title.
func (s *Store) GetReview(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = ? AND r.title_id = ?`, reviewID, titleID)
	r, err := scanReview(row)
	if err != nil {
		return nil, notFound(err, "review")
	}
	return r, nil
}

// UpdateReview rewrites text and score. Author, title and pub_date never change.
func (s *Store) UpdateReview(ctx context.Context, r *domain.Review) error {
	return s.execAffecting(ctx, "review",
		`UPDATE reviews SET text = ?, score = ? WHERE id = ? AND title_id = ?`,
		r.Text, r.Score, r.ID, r.TitleID)
}

// DeleteReview removes a review and its comments.
func (s *Store) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	return s.execAffecting(ctx, "review",
		`DELETE FROM reviews WHERE id = ? AND title_id = ?`, reviewID, titleID)
}

// ListReviews returns the reviews of a title, newest first.
func (s *Store) ListReviews(ctx context.Context, titleID int64, page store.Page) (*store.List[*domain.Review], error) {
	page = page.Normalize()

	total, err := s.count(ctx, `SELECT COUNT(*) FROM reviews WHERE title_id = ?`, titleID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		reviewSelect+` WHERE r.title_id = ? ORDER BY r.pub_date DESC, r.id DESC LIMIT ? OFFSET ?`,
		titleID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.NewList(reviews, total, page), nil
}

// HasReview reports whether the author already reviewed the title.
func (s *Store) HasReview(ctx context.Context, titleID, authorID int64) (bool, error) {
	n, err := s.count(ctx,
		`SELECT COUNT(*) FROM reviews WHERE title_id = ? AND author_id = ?`, titleID, authorID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
