package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domproduct "example.com/shopfront/internal/domain/product"
	productuc "example.com/shopfront/internal/usecase/product"
)

type addProductRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
}

type editProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3"`
	Description *string  `json:"description" validate:"omitempty,min=10"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

func (r *addProductRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
}

func (r *editProductRequest) trim() {
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Category)
}

func mapProduct(p *domproduct.Product) map[string]any {
	out := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"merchantId":  p.MerchantID,
		"isActive":    p.IsActive,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
	if m := p.Merchant; m != nil {
		merchant := map[string]any{"id": m.ID, "name": m.Name}
		if m.Email != "" {
			merchant["email"] = m.Email
		}
		out["merchant"] = merchant
	}
	return out
}

func rawFilters(r *http.Request) productuc.RawFilters {
	q := r.URL.Query()
	return productuc.RawFilters{
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
		Category:  q.Get("category"),
		MinPrice:  q.Get("minPrice"),
		MaxPrice:  q.Get("maxPrice"),
		Query:     q.Get("q"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

func mapListing(l *productuc.Listing) map[string]any {
	products := make([]map[string]any, 0, len(l.Items))
	for _, p := range l.Items {
		products = append(products, mapProduct(p))
	}

	// Absent filters are echoed as null.
	var category, search any
	if l.Filters.Category != "" {
		category = l.Filters.Category
	}
	if l.Filters.SearchQuery != "" {
		search = l.Filters.SearchQuery
	}
	var minPrice, maxPrice any
	if l.Filters.MinPrice != nil {
		minPrice = *l.Filters.MinPrice
	}
	if l.Filters.MaxPrice != nil {
		maxPrice = *l.Filters.MaxPrice
	}

	pg := l.Pagination
	return map[string]any{
		"success":  true,
		"products": products,
		"pagination": map[string]any{
			"page":        pg.Page,
			"totalPages":  pg.TotalPages,
			"totalDocs":   pg.TotalItems,
			"hasNextPage": pg.HasNextPage,
			"hasPrevPage": pg.HasPrevPage,
			"limit":       pg.Limit,
		},
		"filters": map[string]any{
			"category":    category,
			"minPrice":    minPrice,
			"maxPrice":    maxPrice,
			"searchQuery": search,
			"sortBy":      string(l.Filters.SortBy),
			"sortOrder":   l.Filters.SortOrder.String(),
		},
	}
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	listing, err := a.productSvc.ListPublic(r.Context(), rawFilters(r))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapListing(listing))
}

func (a *API) handleListMerchantProducts(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	listing, err := a.productSvc.ListMerchant(r.Context(), user.ID, rawFilters(r))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapListing(listing))
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": mapProduct(p)})
}

func (a *API) handlePriceRange(w http.ResponseWriter, r *http.Request) {
	pr, err := a.productSvc.PriceRange(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"priceRange": map[string]any{"min": pr.Min, "max": pr.Max},
	})
}

func (a *API) handleMerchantStats(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	stats, err := a.productSvc.MerchantStats(r.Context(), user.ID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}

	categories := make([]map[string]any, 0, len(stats.Categories))
	for _, c := range stats.Categories {
		categories = append(categories, map[string]any{"category": c.Category, "count": c.Count})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"totalProducts": stats.ActiveProducts,
			"totalValue":    stats.TotalValue,
			"categories":    categories,
		},
	})
}

func (a *API) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	user := getAuthUser(r.Context())
	p, err := a.productSvc.Add(r.Context(), productuc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}, user.ID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Product added successfully",
		"product": mapProduct(p),
	})
}

func (a *API) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	var req editProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	user := getAuthUser(r.Context())
	p, err := a.productSvc.Edit(r.Context(), chi.URLParam(r, "id"), domproduct.Patch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    req.IsActive,
	}, user.ID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product updated successfully",
		"product": mapProduct(p),
	})
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if err := a.productSvc.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product deleted successfully",
	})
}
