package product

import (
	"math"
	"strconv"
	"strings"

	dom "example.com/shopfront/internal/domain/product"
)

// RawFilters are the listing parameters exactly as the client sent them.
type RawFilters struct {
	Page      string
	Limit     string
	Category  string
	MinPrice  string
	MaxPrice  string
	Query     string
	SortBy    string
	SortOrder string
}

// Policy controls how RawFilters are coerced.
type Policy struct {
	DefaultPageSize int
	MaxPageSize     int
	// StrictPriceFilters rejects unparseable price bounds instead of
	// dropping them.
	StrictPriceFilters bool
}

func DefaultPolicy() Policy {
	return Policy{DefaultPageSize: 10, MaxPageSize: 100}
}

// AppliedFilters echoes the filters that actually shaped the query.
type AppliedFilters struct {
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	SearchQuery string
	SortBy      dom.SortField
	SortOrder   dom.SortDirection
}

// Build turns raw into find options on top of the base scope. Absent or
// blank values add no predicate; sort and page values outside their
// domain fall back to defaults.
func (p Policy) Build(base dom.Query, raw RawFilters) (dom.FindOptions, AppliedFilters, error) {
	q := base
	var applied AppliedFilters

	if category := strings.TrimSpace(raw.Category); category != "" {
		q.Category = category
		applied.Category = category
	}

	minPrice, err := p.parsePrice(raw.MinPrice)
	if err != nil {
		return dom.FindOptions{}, AppliedFilters{}, err
	}
	maxPrice, err := p.parsePrice(raw.MaxPrice)
	if err != nil {
		return dom.FindOptions{}, AppliedFilters{}, err
	}
	q.MinPrice, applied.MinPrice = minPrice, minPrice
	q.MaxPrice, applied.MaxPrice = maxPrice, maxPrice

	if search := strings.TrimSpace(raw.Query); search != "" {
		q.Search = search
		applied.SearchQuery = search
	}

	sort := dom.Sort{Field: dom.SortField(strings.TrimSpace(raw.SortBy)), Direction: dom.Descending}
	if !sort.Field.IsValid() {
		sort.Field = dom.SortByCreatedAt
	}
	if strings.TrimSpace(raw.SortOrder) == "asc" {
		sort.Direction = dom.Ascending
	}
	applied.SortBy = sort.Field
	applied.SortOrder = sort.Direction

	limit := p.pageSize(raw.Limit)
	return dom.FindOptions{
		Query: q,
		Sort:  sort,
		Page:  dom.Page{Number: p.pageNumber(raw.Page, limit), Limit: limit},
	}, applied, nil
}

// pageNumber keeps (page-1)*limit within an int so offsets never wrap.
func (p Policy) pageNumber(raw string, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if last := math.MaxInt / limit; n > last {
		return last
	}
	return n
}

func (p Policy) pageSize(raw string) int {
	def := p.DefaultPageSize
	if def < 1 {
		def = 10
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		n = def
	}
	if p.MaxPageSize > 0 && n > p.MaxPageSize {
		n = p.MaxPageSize
	}
	return n
}

func (p Policy) parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if p.StrictPriceFilters {
			return nil, dom.ErrInvalidPriceFilter
		}
		return nil, nil
	}
	return &v, nil
}
