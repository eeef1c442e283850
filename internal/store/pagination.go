package store

// Page bounds for list queries.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a limit/offset window over an ordered result set.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the window into the accepted range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// List is one window of results together with the size of the whole set.
type List[T any] struct {
	Items  []T
	Count  int
	Limit  int
	Offset int
}

// NewList builds a List for the given window.
func NewList[T any](items []T, count int, page Page) *List[T] {
	if items == nil {
		items = []T{}
	}
	return &List[T]{
		Items:  items,
		Count:  count,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
