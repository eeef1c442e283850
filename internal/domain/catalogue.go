package domain

// SlugNamedEntity is the shared shape of lookup entities addressed by slug.
type SlugNamedEntity struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category classifies a title. A title has at most one.
type Category struct {
	ID int64 `json:"-"`
	SlugNamedEntity
}

// Genre tags a title. A title may have many.
type Genre struct {
	ID int64 `json:"-"`
	SlugNamedEntity
}

// Title is a reviewable work.
type Title struct {
	ID          int64
	Name        string
	Year        int
	Description string
	Category    *Category
	Genres      []Genre
	// Rating is the mean review score, nil when the title has no reviews.
	Rating *float64
}

// CategorySlug returns the slug of the title's category or "" when it has none.
func (t *Title) CategorySlug() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Slug
}

// GenreSlugs returns the slugs of the title's genres in order.
func (t *Title) GenreSlugs() []string {
	slugs := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		slugs = append(slugs, g.Slug)
	}
	return slugs
}
