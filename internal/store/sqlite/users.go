package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, username, email, role, bio, first_name, last_name,
	is_superuser, is_staff, confirmed, last_login, date_joined`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u           domain.User
		role        string
		isSuperuser int
		isStaff     int
		confirmed   int
		lastLogin   sql.NullString
		dateJoined  string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&role,
		&u.Bio,
		&u.FirstName,
		&u.LastName,
		&isSuperuser,
		&isStaff,
		&confirmed,
		&lastLogin,
		&dateJoined,
	)
	if err != nil {
		return nil, err
	}

	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, err
	}
	u.IsSuperuser = isSuperuser != 0
	u.IsStaff = isStaff != 0
	u.Confirmed = confirmed != 0

	if u.LastLoginAt, err = parseNullableTime(lastLogin); err != nil {
		return nil, err
	}
	if u.DateJoined, err = parseTime(dateJoined); err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a user and sets its ID.
// Returns store.ErrAlreadyExists naming the column when username or email is taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			username, email, role, bio, first_name, last_name,
			is_superuser, is_staff, confirmed, last_login, date_joined
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username,
		u.Email,
		u.Role.String(),
		u.Bio,
		u.FirstName,
		u.LastName,
		boolToInt(u.IsSuperuser),
		boolToInt(u.IsStaff),
		boolToInt(u.Confirmed),
		nullTimeString(u.LastLoginAt),
		formatTime(u.DateJoined),
	)
	if err != nil {
		return uniqueViolation(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id
	return nil
}

// GetUserByID retrieves a user by surrogate id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// GetUserByEmail retrieves a user by exact email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// UpdateUser performs a full row update. date_joined is immutable.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	return s.execAffecting(ctx, "user", `
		UPDATE users SET
			username = ?,
			email = ?,
			role = ?,
			bio = ?,
			first_name = ?,
			last_name = ?,
			is_superuser = ?,
			is_staff = ?,
			confirmed = ?,
			last_login = ?
		WHERE id = ?`,
		u.Username,
		u.Email,
		u.Role.String(),
		u.Bio,
		u.FirstName,
		u.LastName,
		boolToInt(u.IsSuperuser),
		boolToInt(u.IsStaff),
		boolToInt(u.Confirmed),
		nullTimeString(u.LastLoginAt),
		u.ID,
	)
}

// DeleteUser removes a user; reviews and comments they wrote cascade.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, "user", `DELETE FROM users WHERE id = ?`, id)
}

// ListUsers returns users ordered by id.
func (s *Store) ListUsers(ctx context.Context, f store.UserFilter, page store.Page) (*store.List[*domain.User], error) {
	page = page.Normalize()

	where := ""
	var args []any
	if f.Search != "" {
		where = ` WHERE username LIKE ? ESCAPE '\'`
		args = append(args, likePattern(f.Search))
	}

	total, err := s.count(ctx, `SELECT COUNT(*) FROM users`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where+` ORDER BY id LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewList(users, total, page), nil
}

// CountAdministrators counts users with the admin role or the superuser flag.
func (s *Store) CountAdministrators(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM users WHERE role = 'admin' OR is_superuser = 1`)
}
