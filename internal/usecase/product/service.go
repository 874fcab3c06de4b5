package product

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	dom "example.com/shopfront/internal/domain/product"
	domuser "example.com/shopfront/internal/domain/user"
)

type Service struct {
	repo   dom.Repository
	users  domuser.Repository
	policy Policy
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo dom.Repository, users domuser.Repository, policy Policy, log *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		policy: policy,
		log:    log.With(zap.String("service", "product")),
		now:    time.Now,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
}

// Listing is one page of products plus the filters that produced it.
type Listing struct {
	Items      []*dom.Product
	Pagination dom.Pagination
	Filters    AppliedFilters
}

type MerchantStats struct {
	ActiveProducts int64
	TotalValue     float64
	Categories     []dom.CategoryCount
}

func validPrice(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func (s *Service) Add(ctx context.Context, in CreateInput, merchantID string) (*dom.Product, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, dom.ErrCategoryRequired
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, dom.ErrTitleRequired
	}
	if !validPrice(in.Price) {
		return nil, dom.ErrNegativePrice
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &dom.Product{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    category,
		MerchantID:  merchantID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Product created",
		zap.String("product_id", created.ID),
		zap.String("merchant_id", merchantID),
	)
	s.enrichAfterWrite(ctx, created)
	return created, nil
}

// owned loads a product and checks that merchantID owns it.
func (s *Service) owned(ctx context.Context, id, merchantID string, forbidden error) (*dom.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.MerchantID != merchantID {
		s.log.Warn("Ownership check failed",
			zap.String("product_id", id),
			zap.String("merchant_id", merchantID),
		)
		return nil, forbidden
	}
	return p, nil
}

func (s *Service) Edit(ctx context.Context, id string, patch dom.Patch, merchantID string) (*dom.Product, error) {
	p, err := s.owned(ctx, id, merchantID, dom.ErrEditForbidden)
	if err != nil {
		return nil, err
	}

	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, dom.ErrCategoryEmpty
		}
		patch.Category = &category
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, dom.ErrTitleRequired
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		patch.Description = &description
	}
	if patch.Price != nil && !validPrice(*patch.Price) {
		return nil, dom.ErrNegativePrice
	}

	p.Apply(patch)
	p.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.enrichAfterWrite(ctx, updated)
	return updated, nil
}

// Delete marks the product inactive. The record stays in storage.
func (s *Service) Delete(ctx context.Context, id string, merchantID string) error {
	p, err := s.owned(ctx, id, merchantID, dom.ErrDeleteForbidden)
	if err != nil {
		return err
	}

	p.IsActive = false
	p.UpdatedAt = s.now().UTC()
	if _, err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.log.Info("Product deactivated", zap.String("product_id", id), zap.String("merchant_id", merchantID))
	return nil
}

// GetByID is the public lookup; inactive products are not visible.
func (s *Service) GetByID(ctx context.Context, id string) (*dom.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, dom.ErrProductNotFound
	}
	if err := s.attachMerchants(ctx, []*dom.Product{p}, true); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPublic lists active products with merchant names attached.
func (s *Service) ListPublic(ctx context.Context, raw RawFilters) (*Listing, error) {
	listing, err := s.list(ctx, dom.Query{OnlyActive: true}, raw)
	if err != nil {
		return nil, err
	}
	if err := s.attachMerchants(ctx, listing.Items, false); err != nil {
		return nil, err
	}
	return listing, nil
}

// ListMerchant lists every product the merchant owns, inactive included.
func (s *Service) ListMerchant(ctx context.Context, merchantID string, raw RawFilters) (*Listing, error) {
	return s.list(ctx, dom.Query{MerchantID: merchantID}, raw)
}

func (s *Service) list(ctx context.Context, base dom.Query, raw RawFilters) (*Listing, error) {
	opts, applied, err := s.policy.Build(base, raw)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Find(ctx, opts)
	if err != nil {
		return nil, err
	}

	items := res.Items
	if items == nil {
		items = []*dom.Product{}
	}
	return &Listing{Items: items, Pagination: res.Pagination, Filters: applied}, nil
}

func (s *Service) PriceRange(ctx context.Context) (dom.PriceRange, error) {
	return s.repo.PriceRange(ctx)
}

func (s *Service) MerchantStats(ctx context.Context, merchantID string) (*MerchantStats, error) {
	count, err := s.repo.Count(ctx, dom.Query{OnlyActive: true, MerchantID: merchantID})
	if err != nil {
		return nil, err
	}
	total, err := s.repo.TotalValue(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.CategoryStats(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []dom.CategoryCount{}
	}
	return &MerchantStats{ActiveProducts: count, TotalValue: total, Categories: categories}, nil
}

// enrichAfterWrite attaches the merchant to a stored product. The write has
// already happened, so a lookup failure is only logged.
func (s *Service) enrichAfterWrite(ctx context.Context, p *dom.Product) {
	if err := s.attachMerchants(ctx, []*dom.Product{p}, true); err != nil {
		s.log.Warn("Merchant lookup failed", zap.String("product_id", p.ID), zap.Error(err))
	}
}

// attachMerchants fills Product.Merchant from the user store. withEmail
// controls whether the contact address is exposed.
func (s *Service) attachMerchants(ctx context.Context, items []*dom.Product, withEmail bool) error {
	if s.users == nil || len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.MerchantID]; ok || p.MerchantID == "" {
			continue
		}
		seen[p.MerchantID] = struct{}{}
		ids = append(ids, p.MerchantID)
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*domuser.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, p := range items {
		u, ok := byID[p.MerchantID]
		if !ok {
			continue
		}
		m := &dom.Merchant{ID: u.ID, Name: u.Name}
		if withEmail {
			m.Email = u.Email
		}
		p.Merchant = m
	}
	return nil
}
