package memory

import (
	"context"
	"math"
	"sort"

	domproduct "example.com/shopfront/internal/domain/product"
)

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *p
	created.ID = r.s.newID()
	created.Merchant = nil
	r.s.products[created.ID] = created
	return &created, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[p.ID]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}

	updated := *p
	updated.MerchantID = existing.MerchantID
	updated.CreatedAt = existing.CreatedAt
	updated.Merchant = nil
	r.s.products[p.ID] = updated
	return &updated, nil
}

func (r *ProductRepository) matching(q domproduct.Query) []*domproduct.Product {
	var items []*domproduct.Product
	for _, p := range r.s.products {
		if q.Matches(&p) {
			items = append(items, &p)
		}
	}
	return items
}

func (r *ProductRepository) Find(ctx context.Context, opts domproduct.FindOptions) (*domproduct.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	items := r.matching(opts.Query)
	r.s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return opts.Sort.Less(items[i], items[j])
	})

	total := int64(len(items))
	start := opts.Page.Offset()
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := start + min(opts.Page.Limit, len(items)-start)

	return &domproduct.PageResult{
		Items:      items[start:end],
		Pagination: domproduct.NewPagination(opts.Page, total),
	}, nil
}

func (r *ProductRepository) Count(ctx context.Context, q domproduct.Query) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matching(q))), nil
}

func (r *ProductRepository) PriceRange(ctx context.Context) (domproduct.PriceRange, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := r.matching(domproduct.Query{OnlyActive: true})
	if len(items) == 0 {
		return domproduct.PriceRange{}, nil
	}
	pr := domproduct.PriceRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range items {
		pr.Min = math.Min(pr.Min, p.Price)
		pr.Max = math.Max(pr.Max, p.Price)
	}
	return pr, nil
}

func (r *ProductRepository) CategoryStats(ctx context.Context, merchantID string) ([]domproduct.CategoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, p := range r.matching(domproduct.Query{OnlyActive: true, MerchantID: merchantID}) {
		counts[p.Category]++
	}

	stats := make([]domproduct.CategoryCount, 0, len(counts))
	for category, n := range counts {
		stats = append(stats, domproduct.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}

func (r *ProductRepository) TotalValue(ctx context.Context, merchantID string) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total float64
	for _, p := range r.matching(domproduct.Query{OnlyActive: true, MerchantID: merchantID}) {
		total += p.Price
	}
	return total, nil
}
