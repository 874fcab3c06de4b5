package product

import "time"

type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    string
	MerchantID  string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Merchant is filled by enrichment and never persisted.
	Merchant *Merchant
}

// Merchant carries the owner display fields attached to a product.
type Merchant struct {
	ID    string
	Name  string
	Email string
}

// Patch holds the fields of an edit; nil means unchanged. The owning
// merchant is not patchable.
type Patch struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	IsActive    *bool
}

// Apply copies the set fields of patch onto p.
func (p *Product) Apply(patch Patch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
}

// CategoryCount is one row of a merchant's per-category breakdown.
type CategoryCount struct {
	Category string
	Count    int64
}

type PriceRange struct {
	Min float64
	Max float64
}
