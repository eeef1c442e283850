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

// UserService manages accounts: administrator CRUD and the self-service profile.
type UserService struct {
	store     store.UserStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.UserStore, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateUserRequest is an administrator creating an account directly.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=150,username,notreserved"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio" validate:"max=256"`
}

// UpdateUserRequest is a partial update. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitnil,required,max=150,username,notreserved"`
	Email     *string `json:"email" validate:"omitnil,required,email,max=254"`
	Role      *string `json:"role" validate:"omitnil,oneof=user moderator admin"`
	FirstName *string `json:"first_name" validate:"omitnil,max=150"`
	LastName  *string `json:"last_name" validate:"omitnil,max=150"`
	Bio       *string `json:"bio" validate:"omitnil,max=256"`
}

// List returns users ordered by id.
func (s *UserService) List(ctx context.Context, actor domain.Actor, f store.UserFilter, page store.Page) (*store.List[*domain.User], error) {
	if err := access.Check(actor, access.ActionRead, access.Users()); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx, f, page)
}

// Get returns a user by username.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, username string) (*domain.User, error) {
	if err := access.Check(actor, access.ActionRead, access.Users()); err != nil {
		return nil, err
	}
	return s.byUsername(ctx, username)
}

// Create adds a user. The account starts unconfirmed; the user obtains a code
// through signup.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (*domain.User, error) {
	if err := access.Check(actor, access.ActionCreate, access.Users()); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if req.Role != "" {
		role, _ = domain.ParseRole(req.Role)
	}

	u := &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		Role:      role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, userConflict(err)
	}

	s.logger.Info("user created", "username", u.Username, "role", u.Role.String(), "by", actor.User.Username)
	return u, nil
}

// Update applies a partial update to any user. Administrators may change any
// role, but the last administrator cannot demote themself.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, username string, req UpdateUserRequest) (*domain.User, error) {
	if err := access.Check(actor, access.ActionUpdate, access.Users()); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	u, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, u, req)
}

// Delete removes a user together with their reviews and comments.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, username string) error {
	if err := access.Check(actor, access.ActionDelete, access.Users()); err != nil {
		return err
	}

	u, err := s.byUsername(ctx, username)
	if err != nil {
		return err
	}
	if u.IsAdministrator() {
		if err := s.guardLastAdministrator(ctx); err != nil {
			return err
		}
	}

	if err := s.store.DeleteUser(ctx, u.ID); err != nil {
		return notFoundAs(err, "user not found")
	}

	s.logger.Info("user deleted", "username", u.Username, "by", actor.User.Username)
	return nil
}

// Me returns the caller's own record.
func (s *UserService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if err := access.Check(actor, access.ActionRead, access.Profile()); err != nil {
		return nil, err
	}
	u, err := s.store.GetUserByID(ctx, actor.ID())
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}
	return u, nil
}

// UpdateMe updates the caller's own record. Users and moderators may not change
// their role; sending their current role is accepted as a no-op.
func (s *UserService) UpdateMe(ctx context.Context, actor domain.Actor, req UpdateUserRequest) (*domain.User, error) {
	if err := access.Check(actor, access.ActionUpdate, access.Profile()); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	u, err := s.store.GetUserByID(ctx, actor.ID())
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}

	if req.Role != nil {
		role, _ := domain.ParseRole(*req.Role)
		if role != u.Role && !access.CanChangeOwnRole(u) {
			return nil, domainerrors.FieldError("role", "you cannot change your own role")
		}
	}

	return s.apply(ctx, u, req)
}

func (s *UserService) apply(ctx context.Context, u *domain.User, req UpdateUserRequest) (*domain.User, error) {
	if req.Role != nil {
		role, _ := domain.ParseRole(*req.Role)
		demotes := u.Role == domain.RoleAdmin && role != domain.RoleAdmin && !u.IsSuperuser
		if demotes {
			if err := s.guardLastAdministrator(ctx); err != nil {
				return nil, err
			}
		}
		u.Role = role
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, userConflict(notFoundAs(err, "user not found"))
	}
	return u, nil
}

// guardLastAdministrator refuses to remove administrator rights from the only
// administrator left.
func (s *UserService) guardLastAdministrator(ctx context.Context) error {
	n, err := s.store.CountAdministrators(ctx)
	if err != nil {
		return fmt.Errorf("count administrators: %w", err)
	}
	if n <= 1 {
		return domainerrors.Conflict("cannot remove the last administrator")
	}
	return nil
}

func (s *UserService) byUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}
	return u, nil
}

// userConflict turns a unique violation on users into field errors.
func userConflict(err error) error {
	cols, ok := uniqueColumns(err)
	if !ok {
		return err
	}
	details := make(map[string]string, len(cols))
	for _, col := range cols {
		details[col] = fmt.Sprintf("a user with that %s already exists", col)
	}
	return domainerrors.ValidationWithDetails("validation failed", details).WithCause(err)
}
