package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domcategory "example.com/shopfront/internal/domain/category"
	categoryuc "example.com/shopfront/internal/usecase/category"
)

type createCategoryRequest struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Subcategories []string `json:"subcategories"`
}

type updateCategoryRequest struct {
	Name          *string   `json:"name" validate:"omitempty,min=2"`
	Subcategories *[]string `json:"subcategories"`
}

func (r *createCategoryRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *updateCategoryRequest) trim() {
	trimPtr(r.Name)
}

func mapCategory(c *domcategory.Category) map[string]any {
	subs := c.Subcategories
	if subs == nil {
		subs = []string{}
	}
	return map[string]any{
		"id":            c.ID,
		"name":          c.Name,
		"subcategories": subs,
		"createdAt":     c.CreatedAt,
		"updatedAt":     c.UpdatedAt,
	}
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categorySvc.List(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		resp = append(resp, map[string]any{
			"id":            c.ID,
			"name":          c.Name,
			"subcategories": subs,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": resp})
}

func (a *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := a.categorySvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "category": mapCategory(c)})
}

func (a *API) handleHasSubcategory(w http.ResponseWriter, r *http.Request) {
	exists, err := a.categorySvc.HasSubcategory(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "exists": exists})
}

func (a *API) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	c, err := a.categorySvc.Create(r.Context(), categoryuc.CreateInput{
		Name:          req.Name,
		Subcategories: req.Subcategories,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Category created successfully",
		"category": mapCategory(c),
	})
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	c, err := a.categorySvc.Update(r.Context(), chi.URLParam(r, "id"), domcategory.Patch{
		Name:          req.Name,
		Subcategories: req.Subcategories,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Category updated successfully",
		"category": mapCategory(c),
	})
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := a.categorySvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Category deleted successfully",
	})
}
