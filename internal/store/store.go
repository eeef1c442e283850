// Package store defines the persistence interface for the review catalogue.
package store

import (
	"context"

	"github.com/yamdb/yamdb-server/internal/domain"
)

// UserFilter narrows a user listing.
type UserFilter struct {
	// Search matches a substring of the username.
	Search string
}

// NameFilter narrows a category or genre listing.
type NameFilter struct {
	// Search matches a substring of the name.
	Search string
}

// TitleFilter narrows a title listing. Zero values are ignored.
type TitleFilter struct {
	Name     string // substring of the name
	Category string // exact category slug
	Genre    string // exact genre slug
	Year     int    // exact year
}

// TitleWrite is the persisted shape of a title. Category and genres are already
// resolved to ids by the caller.
type TitleWrite struct {
	Name        string
	Year        int
	Description string
	CategoryID  *int64
	GenreIDs    []int64
}

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, f UserFilter, page Page) (*List[*domain.User], error)
	CountAdministrators(ctx context.Context) (int, error)
}

// CatalogueStore persists categories, genres and titles.
type CatalogueStore interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	ListCategories(ctx context.Context, f NameFilter, page Page) (*List[*domain.Category], error)

	CreateGenre(ctx context.Context, g *domain.Genre) error
	GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, slug string) error
	ListGenres(ctx context.Context, f NameFilter, page Page) (*List[*domain.Genre], error)

	CreateTitle(ctx context.Context, w TitleWrite) (*domain.Title, error)
	GetTitle(ctx context.Context, id int64) (*domain.Title, error)
	UpdateTitle(ctx context.Context, id int64, w TitleWrite) (*domain.Title, error)
	DeleteTitle(ctx context.Context, id int64) error
	ListTitles(ctx context.Context, f TitleFilter, page Page) (*List[*domain.Title], error)
}

// ReviewStore persists reviews and comments.
type ReviewStore interface {
	CreateReview(ctx context.Context, r *domain.Review) error
	GetReview(ctx context.Context, titleID, reviewID int64) (*domain.Review, error)
	UpdateReview(ctx context.Context, r *domain.Review) error
	DeleteReview(ctx context.Context, titleID, reviewID int64) error
	ListReviews(ctx context.Context, titleID int64, page Page) (*List[*domain.Review], error)
	HasReview(ctx context.Context, titleID, authorID int64) (bool, error)

	CreateComment(ctx context.Context, c *domain.Comment) error
	GetComment(ctx context.Context, reviewID, commentID int64) (*domain.Comment, error)
	UpdateComment(ctx context.Context, c *domain.Comment) error
	DeleteComment(ctx context.Context, reviewID, commentID int64) error
	ListComments(ctx context.Context, reviewID int64, page Page) (*List[*domain.Comment], error)
}

// Store is the full persistence surface.
type Store interface {
	UserStore
	CatalogueStore
	ReviewStore

	Ping(ctx context.Context) error
	Close() error
}
