package product

import (
	"math"
	"strings"
)

type SortField string

const (
	SortByPrice     SortField = "price"
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByPrice, SortByTitle, SortByCreatedAt, SortByUpdatedAt:
		return true
	default:
		return false
	}
}

type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// Sort orders by Field, then by ID ascending so pages are stable.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// Query is a conjunction of the base scope and the optional filters.
// Stores translate it; Matches is the reference semantics.
type Query struct {
	// OnlyActive restricts to active products (public scope).
	OnlyActive bool
	// MerchantID restricts to one owner (merchant scope).
	MerchantID string

	Category string
	MinPrice *float64
	MaxPrice *float64
	// Search is matched case-insensitively as a substring of title,
	// description or category.
	Search string
}

func (q Query) Matches(p *Product) bool {
	if q.OnlyActive && !p.IsActive {
		return false
	}
	if q.MerchantID != "" && p.MerchantID != q.MerchantID {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			return false
		}
	}
	return true
}

// Less reports whether a sorts before b under s, including the ID tie-break.
func (s Sort) Less(a, b *Product) bool {
	c := compare(s.Field, a, b)
	if c != 0 {
		if s.Direction == Ascending {
			return c < 0
		}
		return c > 0
	}
	return a.ID < b.ID
}

func compare(field SortField, a, b *Product) int {
	switch field {
	case SortByPrice:
		return cmpOrdered(a.Price, b.Price)
	case SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func cmpOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type Page struct {
	Number int
	Limit  int
}

// Offset is the number of matching items skipped before this page. It
// saturates at math.MaxInt.
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

type FindOptions struct {
	Query Query
	Sort  Sort
	Page  Page
}

type Pagination struct {
	Page        int
	TotalPages  int
	TotalItems  int64
	HasNextPage bool
	HasPrevPage bool
	Limit       int
}

// NewPagination derives the page metadata for total matching items.
func NewPagination(page Page, total int64) Pagination {
	totalPages := 0
	if page.Limit > 0 && total > 0 {
		totalPages = int((total + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return Pagination{
		Page:        page.Number,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page.Number < totalPages,
		HasPrevPage: page.Number > 1,
		Limit:       page.Limit,
	}
}

type PageResult struct {
	Items      []*Product
	Pagination Pagination
}
