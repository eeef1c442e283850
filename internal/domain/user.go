package domain

import "time"

// User is an account that can review titles and comment on reviews.
type User struct {
	ID          int64      `json:"-"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Bio         string     `json:"bio"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsSuperuser bool       `json:"-"`
	IsStaff     bool       `json:"-"`
	Confirmed   bool       `json:"-"`
	LastLoginAt *time.Time `json:"-"`
	DateJoined  time.Time  `json:"-"`
}

// IsAdministrator reports whether the user manages users and the catalogue.
// Superusers count as administrators whatever their role.
func (u *User) IsAdministrator() bool {
	if u.IsSuperuser {
		return true
	}
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleUser, RoleModerator:
		return false
	default:
		return false
	}
}

// Actor is the identity performing a request. A nil User means anonymous.
type Actor struct {
	User *User
}

// Anonymous returns an actor without a user.
func Anonymous() Actor {
	return Actor{}
}

// AsUser returns an actor for the given user.
func AsUser(u *User) Actor {
	return Actor{User: u}
}

// Authenticated reports whether the actor carries a user.
func (a Actor) Authenticated() bool {
	return a.User != nil
}

// ID returns the user id, or zero for anonymous actors.
func (a Actor) ID() int64 {
	if a.User == nil {
		return 0
	}
	return a.User.ID
}
