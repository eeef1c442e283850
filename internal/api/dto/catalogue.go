package dto

import "github.com/yamdb/yamdb-server/internal/domain"

// SlugNamed is a category or genre.
type SlugNamed struct {
	Name string `json:"name" doc:"Display name"`
	Slug string `json:"slug" doc:"URL-safe identifier"`
}

// NewSlugNamed maps a category or genre.
func NewSlugNamed(e domain.SlugNamedEntity) SlugNamed {
	return SlugNamed{Name: e.Name, Slug: e.Slug}
}

// NewCategory maps a category.
func NewCategory(c *domain.Category) SlugNamed {
	return NewSlugNamed(c.SlugNamedEntity)
}

// NewGenre maps a genre.
func NewGenre(g *domain.Genre) SlugNamed {
	return NewSlugNamed(g.SlugNamedEntity)
}

// SlugNamedRequest is the request body for creating a category or genre.
type SlugNamedRequest struct {
	Name string `json:"name,omitempty" doc:"Display name"`
	Slug string `json:"slug,omitempty" doc:"URL-safe identifier"`
}

// Title is the read model: category and genres are nested and the rating is
// computed from reviews.
type Title struct {
	ID          int64       `json:"id" doc:"Title ID"`
	Name        string      `json:"name" doc:"Name"`
	Year        int         `json:"year" doc:"Release year"`
	Rating      *float64    `json:"rating" doc:"Mean review score, null without reviews"`
	Description string      `json:"description" doc:"Description"`
	Genre       []SlugNamed `json:"genre" doc:"Genres"`
	Category    *SlugNamed  `json:"category" doc:"Category, null when unset"`
}

// NewTitle maps a title to its read model.
func NewTitle(t *domain.Title) Title {
	out := Title{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]SlugNamed, len(t.Genres)),
	}
	for i, g := range t.Genres {
		out.Genre[i] = NewSlugNamed(g.SlugNamedEntity)
	}
	if t.Category != nil {
		c := NewCategory(t.Category)
		out.Category = &c
	}
	return out
}

// TitleWrite is the write model returned by create and update: category and
// genres are given by slug.
type TitleWrite struct {
	ID          int64    `json:"id" doc:"Title ID"`
	Name        string   `json:"name" doc:"Name"`
	Year        int      `json:"year" doc:"Release year"`
	Description string   `json:"description" doc:"Description"`
	Genre       []string `json:"genre" doc:"Genre slugs"`
	Category    *string  `json:"category" doc:"Category slug, null when unset"`
}

// NewTitleWrite maps a title to its write model.
func NewTitleWrite(t *domain.Title) TitleWrite {
	out := TitleWrite{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       t.GenreSlugs(),
	}
	if t.Category != nil {
		slug := t.Category.Slug
		out.Category = &slug
	}
	return out
}

// TitleRequest is the request body for creating a title.
type TitleRequest struct {
	Name        string   `json:"name,omitempty" doc:"Name"`
	Year        int      `json:"year,omitempty" doc:"Release year, not in the future"`
	Description string   `json:"description,omitempty" doc:"Description"`
	Genre       []string `json:"genre,omitempty" doc:"Genre slugs"`
	Category    string   `json:"category,omitempty" doc:"Category slug"`
}

// TitlePatchRequest is the request body for a partial title update. An empty
// category clears it; a genre list replaces the current one.
type TitlePatchRequest struct {
	Name        *string  `json:"name,omitempty" doc:"Name"`
	Year        *int     `json:"year,omitempty" doc:"Release year"`
	Description *string  `json:"description,omitempty" doc:"Description"`
	Genre       []string `json:"genre,omitempty" doc:"Genre slugs"`
	Category    *string  `json:"category,omitempty" doc:"Category slug"`
}
