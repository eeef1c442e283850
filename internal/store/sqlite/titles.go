package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

// titleSelect reads a title with its category and computed rating. The rating is
// aggregated on every read and never stored.
const titleSelect = `SELECT t.id, t.name, t.year, t.description,
	c.id, c.name, c.slug,
	(SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id)
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id`

func scanTitle(scanner interface{ Scan(dest ...any) error }) (*domain.Title, error) {
	var (
		t        domain.Title
		catID    sql.NullInt64
		catName  sql.NullString
		catSlug  sql.NullString
		avgScore sql.NullFloat64
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Year,
		&t.Description,
		&catID,
		&catName,
		&catSlug,
		&avgScore,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		t.Category = &domain.Category{
			ID:              catID.Int64,
			SlugNamedEntity: domain.SlugNamedEntity{Name: catName.String, Slug: catSlug.String},
		}
	}
	if avgScore.Valid {
		rating := avgScore.Float64
		t.Rating = &rating
	}
	t.Genres = []domain.Genre{}

	return &t, nil
}

// CreateTitle inserts a title and its genre links in one transaction.
// Returns store.ErrAlreadyExists when (name, category) is taken.
func (s *Store) CreateTitle(ctx context.Context, w store.TitleWrite) (*domain.Title, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO titles (name, year, description, category_id) VALUES (?, ?, ?, ?)`,
			w.Name, w.Year, w.Description, nullInt64(w.CategoryID))
		if err != nil {
			return uniqueViolation(err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
		return insertGenreLinks(ctx, tx, id, w.GenreIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTitle(ctx, id)
}

// GetTitle retrieves a title with category, genres and rating.
func (s *Store) GetTitle(ctx context.Context, id int64) (*domain.Title, error) {
	row := s.db.QueryRowContext(ctx, titleSelect+` WHERE t.id = ?`, id)
	t, err := scanTitle(row)
	if err != nil {
		return nil, notFound(err, "title")
	}
	if err := s.attachGenres(ctx, []*domain.Title{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTitle rewrites a title and replaces its genre links.
func (s *Store) UpdateTitle(ctx context.Context, id int64, w store.TitleWrite) (*domain.Title, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE titles SET name = ?, year = ?, description = ?, category_id = ? WHERE id = ?`,
			w.Name, w.Year, w.Description, nullInt64(w.CategoryID), id)
		if err != nil {
			return uniqueViolation(err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound.WithMessage("title not found")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM genre_titles WHERE title_id = ?`, id); err != nil {
			return err
		}
		return insertGenreLinks(ctx, tx, id, w.GenreIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTitle(ctx, id)
}

// DeleteTitle removes a title with its genre links, reviews and comments.
func (s *Store) DeleteTitle(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, "title", `DELETE FROM titles WHERE id = ?`, id)
}

// ListTitles returns titles ordered by name then year.
func (s *Store) ListTitles(ctx context.Context, f store.TitleFilter, page store.Page) (*store.List[*domain.Title], error) {
	page = page.Normalize()

	var (
		conds []string
		args  []any
	)
	if f.Name != "" {
		conds = append(conds, `instr(t.name, ?) > 0`)
		args = append(args, f.Name)
	}
	if f.Category != "" {
		conds = append(conds, `c.slug = ?`)
		args = append(args, f.Category)
	}
	if f.Genre != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM genre_titles gt
			JOIN genres g ON g.id = gt.genre_id
			WHERE gt.title_id = t.id AND g.slug = ?)`)
		args = append(args, f.Genre)
	}
	if f.Year != 0 {
		conds = append(conds, `t.year = ?`)
		args = append(args, f.Year)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	total, err := s.count(ctx,
		`SELECT COUNT(*) FROM titles t LEFT JOIN categories c ON c.id = t.category_id`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		titleSelect+where+` ORDER BY t.name, t.year, t.id LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []*domain.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachGenres(ctx, titles); err != nil {
		return nil, err
	}
	return store.NewList(titles, total, page), nil
}

// attachGenres loads the genres of the given titles in one query. Links whose genre
// was deleted are skipped.
func (s *Store) attachGenres(ctx context.Context, titles []*domain.Title) error {
	if len(titles) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Title, len(titles))
	placeholders := make([]string, 0, len(titles))
	args := make([]any, 0, len(titles))
	for _, t := range titles {
		byID[t.ID] = t
		placeholders = append(placeholders, "?")
		args = append(args, t.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT gt.title_id, g.id, g.name, g.slug
		FROM genre_titles gt
		JOIN genres g ON g.id = gt.genre_id
		WHERE gt.title_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY gt.id`, args...)
	if err != nil {
		return fmt.Errorf("load title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int64
			g       domain.Genre
		)
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return err
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}
	return rows.Err()
}

func insertGenreLinks(ctx context.Context, tx *sql.Tx, titleID int64, genreIDs []int64) error {
	seen := make(map[int64]struct{}, len(genreIDs))
	for _, gid := range genreIDs {
		if _, dup := seen[gid]; dup {
			continue
		}
		seen[gid] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO genre_titles (genre_id, title_id) VALUES (?, ?)`, gid, titleID); err != nil {
			return fmt.Errorf("link genre %d: %w", gid, err)
		}
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
