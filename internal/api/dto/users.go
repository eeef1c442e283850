package dto

import "github.com/yamdb/yamdb-server/internal/domain"

// User is the public shape of an account.
type User struct {
	Username  string `json:"username" doc:"Unique username"`
	Email     string `json:"email" doc:"Email address"`
	FirstName string `json:"first_name" doc:"First name"`
	LastName  string `json:"last_name" doc:"Last name"`
	Bio       string `json:"bio" doc:"Free-form biography"`
	Role      string `json:"role" enum:"user,moderator,admin" doc:"Authorization role"`
}

// NewUser maps a domain user.
func NewUser(u *domain.User) User {
	return User{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role.String(),
	}
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Username  string `json:"username,omitempty" maxLength:"150" doc:"Unique username"`
	Email     string `json:"email,omitempty" maxLength:"254" doc:"Email address"`
	FirstName string `json:"first_name,omitempty" doc:"First name"`
	LastName  string `json:"last_name,omitempty" doc:"Last name"`
	Bio       string `json:"bio,omitempty" doc:"Free-form biography"`
	Role      string `json:"role,omitempty" enum:"user,moderator,admin" doc:"Role, user when omitted"`
}

// UpdateUserRequest is the request body for a partial user update.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" doc:"New username"`
	Email     *string `json:"email,omitempty" doc:"New email address"`
	FirstName *string `json:"first_name,omitempty" doc:"First name"`
	LastName  *string `json:"last_name,omitempty" doc:"Last name"`
	Bio       *string `json:"bio,omitempty" doc:"Free-form biography"`
	Role      *string `json:"role,omitempty" enum:"user,moderator,admin" doc:"Role"`
}
