// Package access holds the authorization rules. Every function here is pure: it looks
// only at the actor, the action and the resource, never at storage.
package access

import (
	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
)

// Action is what the actor wants to do with a resource.
type Action uint8

const (
	// ActionRead covers safe methods (GET, HEAD, OPTIONS).
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Safe reports whether the action leaves state unchanged.
func (a Action) Safe() bool {
	return a == ActionRead
}

// Kind is the resource family being accessed.
type Kind uint8

const (
	KindUser Kind = iota
	KindProfile
	KindCategory
	KindGenre
	KindTitle
	KindReview
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindProfile:
		return "profile"
	case KindCategory:
		return "category"
	case KindGenre:
		return "genre"
	case KindTitle:
		return "title"
	case KindReview:
		return "review"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Resource identifies the target of an action. AuthorID is only meaningful for
// reviews and comments and is zero for collection-level checks.
type Resource struct {
	Kind     Kind
	AuthorID int64
}

// Users is the admin-managed user collection.
func Users() Resource { return Resource{Kind: KindUser} }

// Profile is the caller's own record behind /users/me.
func Profile() Resource { return Resource{Kind: KindProfile} }

// Categories is the category collection.
func Categories() Resource { return Resource{Kind: KindCategory} }

// Genres is the genre collection.
func Genres() Resource { return Resource{Kind: KindGenre} }

// Titles is the title collection.
func Titles() Resource { return Resource{Kind: KindTitle} }

// Review targets a review written by authorID, or the collection when zero.
func Review(authorID int64) Resource { return Resource{Kind: KindReview, AuthorID: authorID} }

// Comment targets a comment written by authorID, or the collection when zero.
func Comment(authorID int64) Resource { return Resource{Kind: KindComment, AuthorID: authorID} }

// Authorize reports whether actor may perform action on res.
func Authorize(actor domain.Actor, action Action, res Resource) bool {
	switch res.Kind {
	case KindUser:
		return actor.Authenticated() && actor.User.IsAdministrator()

	case KindProfile:
		return actor.Authenticated()

	case KindCategory, KindGenre, KindTitle:
		if action.Safe() {
			return true
		}
		return actor.Authenticated() && actor.User.IsAdministrator()

	case KindReview, KindComment:
		if action.Safe() {
			return true
		}
		if !actor.Authenticated() {
			return false
		}
		if action == ActionCreate {
			return true
		}
		return canModerate(actor.User, res.AuthorID)

	default:
		return false
	}
}

// canModerate decides update/delete on authored content.
func canModerate(u *domain.User, authorID int64) bool {
	if u.ID == authorID || u.IsStaff || u.IsSuperuser {
		return true
	}
	switch u.Role {
	case domain.RoleModerator, domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return false
	default:
		return false
	}
}

// Check is Authorize returning a domain error: unauthenticated actors get 401 and
// authenticated ones lacking rights get 403.
func Check(actor domain.Actor, action Action, res Resource) error {
	if Authorize(actor, action, res) {
		return nil
	}
	if !actor.Authenticated() {
		return domainerrors.Unauthorized("authentication credentials were not provided")
	}
	return domainerrors.Forbidden("you do not have permission to " + action.String() + " this " + res.Kind.String())
}

// CanChangeOwnRole reports whether the actor may set their own role through the
// self-service profile. Only administrators may.
func CanChangeOwnRole(u *domain.User) bool {
	if u.IsSuperuser {
		return true
	}
	switch u.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser, domain.RoleModerator:
		return false
	default:
		return false
	}
}
