package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	// Update persists every mutable field of p. MerchantID is never written.
	Update(ctx context.Context, p *Product) (*Product, error)
	Find(ctx context.Context, opts FindOptions) (*PageResult, error)
	Count(ctx context.Context, q Query) (int64, error)

	// PriceRange covers active products only.
	PriceRange(ctx context.Context) (PriceRange, error)
	// CategoryStats and TotalValue cover the merchant's active products.
	CategoryStats(ctx context.Context, merchantID string) ([]CategoryCount, error)
	TotalValue(ctx context.Context, merchantID string) (float64, error)
}
