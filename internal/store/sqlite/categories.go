package sqlite

import (
	"context"
	"fmt"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

// Categories and genres share one table shape; slugTable holds the table-specific
// parts of the queries.
type slugTable struct {
	table string
	what  string
}

var (
	categoriesTable = slugTable{table: "categories", what: "category"}
	genresTable     = slugTable{table: "genres", what: "genre"}
)

func (t slugTable) create(ctx context.Context, s *Store, e *domain.SlugNamedEntity) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO `+t.table+` (name, slug) VALUES (?, ?)`, e.Name, e.Slug)
	if err != nil {
		return 0, uniqueViolation(err)
	}
	return result.LastInsertId()
}

func (t slugTable) getBySlug(ctx context.Context, s *Store, slug string) (int64, domain.SlugNamedEntity, error) {
	var (
		id int64
		e  domain.SlugNamedEntity
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug FROM `+t.table+` WHERE slug = ?`, slug).Scan(&id, &e.Name, &e.Slug)
	if err != nil {
		return 0, e, notFound(err, t.what)
	}
	return id, e, nil
}

func (t slugTable) delete(ctx context.Context, s *Store, slug string) error {
	return s.execAffecting(ctx, t.what, `DELETE FROM `+t.table+` WHERE slug = ?`, slug)
}

type slugRow struct {
	id int64
	domain.SlugNamedEntity
}

func (t slugTable) list(ctx context.Context, s *Store, f store.NameFilter, page store.Page) ([]slugRow, int, error) {
	where := ""
	var args []any
	if f.Search != "" {
		where = ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, likePattern(f.Search))
	}

	total, err := s.count(ctx, `SELECT COUNT(*) FROM `+t.table+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t.table, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug FROM `+t.table+where+` ORDER BY name, id LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	var out []slugRow
	for rows.Next() {
		var r slugRow
		if err := rows.Scan(&r.id, &r.Name, &r.Slug); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// CreateCategory inserts a category and sets its ID.
// Returns store.ErrAlreadyExists if the slug is taken.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	id, err := categoriesTable.create(ctx, s, &c.SlugNamedEntity)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetCategoryBySlug retrieves a category by slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	id, e, err := categoriesTable.getBySlug(ctx, s, slug)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: id, SlugNamedEntity: e}, nil
}

// DeleteCategory removes a category. Titles keep existing with no category.
func (s *Store) DeleteCategory(ctx context.Context, slug string) error {
	return categoriesTable.delete(ctx, s, slug)
}

// ListCategories returns categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, f store.NameFilter, page store.Page) (*store.List[*domain.Category], error) {
	page = page.Normalize()
	rows, total, err := categoriesTable.list(ctx, s, f, page)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Category, 0, len(rows))
	for _, r := range rows {
		items = append(items, &domain.Category{ID: r.id, SlugNamedEntity: r.SlugNamedEntity})
	}
	return store.NewList(items, total, page), nil
}
