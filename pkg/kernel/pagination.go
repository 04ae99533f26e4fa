package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationOptions carries page-based listing parameters
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize fills defaults and caps the page size
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the SQL offset for the normalized options
func (p PaginationOptions) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the SQL limit for the normalized options
func (p PaginationOptions) Limit() int {
	return p.Normalize().PageSize
}

// Paginated wraps a page of items
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  int  `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a page result from items
func NewPaginated[T any](items []T, page int) *Paginated[T] {
	return &Paginated[T]{
		Items: items,
		Page:  page,
		Empty: len(items) == 0,
	}
}
