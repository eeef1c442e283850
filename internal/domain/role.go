package domain

import (
	"fmt"
	"strings"
)

// Role is the authorization tier of a user. It is a closed set: the zero value is
// RoleUser and every value outside the three constants is rejected on parse.
type Role uint8

const (
	// RoleUser can read everything public and manage their own reviews and comments.
	RoleUser Role = iota
	// RoleModerator can additionally edit or delete anyone's reviews and comments.
	RoleModerator
	// RoleAdmin has full access to users and the catalogue.
	RoleAdmin
)

// Roles lists every role in ascending order of privilege.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole converts a wire name to a Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Roles {
		if r.String() == name {
			return r, nil
		}
	}
	return RoleUser, fmt.Errorf("unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return []byte(r.String()), nil
	default:
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
