package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createCategory(t *testing.T, s *testServer, token, name string, subs ...string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/categories", map[string]any{
		"name":          name,
		"subcategories": subs,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["category"].(map[string]any)["id"].(string)
}

func TestCreateCategory(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	customer, _ := s.register(t, "Cara", "cara@shop.test", "customer")

	t.Run("requires a token", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Books"}, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("customers are forbidden", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Books"}, customer)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("merchant creates", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/categories", map[string]any{
			"name":          "Electronics",
			"subcategories": []string{"Phones", " ", "Laptops"},
		}, merchant)
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "Category created successfully", body["message"])
		category := body["category"].(map[string]any)
		require.Equal(t, "Electronics", category["name"])
		require.Equal(t, []any{"Phones", "Laptops"}, category["subcategories"])
	})

	t.Run("name clash ignores case", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": "electronics"}, merchant)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "Category with this name already exists", decodeBody(t, rec)["error"])
	})

	t.Run("short name", func(t *testing.T) {
		for _, name := range []string{"X", "  X  "} {
			rec := s.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": name}, merchant)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, decodeBody(t, rec)["details"], "name")
		}
	})
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	createCategory(t, s, merchant, "Toys")
	createCategory(t, s, merchant, "Books", "Fiction")

	rec := s.do(t, http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	categories := decodeBody(t, rec)["categories"].([]any)
	require.Len(t, categories, 2)

	first := categories[0].(map[string]any)
	require.Equal(t, "Books", first["name"])
	require.Equal(t, []any{"Fiction"}, first["subcategories"])
	require.NotContains(t, first, "createdAt")
	require.Equal(t, "Toys", categories[1].(map[string]any)["name"])
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	id := createCategory(t, s, merchant, "Books", "Fiction")
	createCategory(t, s, merchant, "Toys")

	rec := s.do(t, http.MethodGet, "/api/v1/categories/"+id+"/subcategories/Fiction", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["exists"])

	rec = s.do(t, http.MethodGet, "/api/v1/categories/"+id+"/subcategories/Poetry", nil, "")
	require.Equal(t, false, decodeBody(t, rec)["exists"])

	rec = s.do(t, http.MethodPut, "/api/v1/categories/"+id, map[string]any{"name": "TOYS"}, merchant)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/categories/"+id, map[string]any{
		"name":          "Novels",
		"subcategories": []string{"Crime"},
	}, merchant)
	require.Equal(t, http.StatusOK, rec.Code)
	category := decodeBody(t, rec)["category"].(map[string]any)
	require.Equal(t, "Novels", category["name"])
	require.Equal(t, []any{"Crime"}, category["subcategories"])

	rec = s.do(t, http.MethodDelete, "/api/v1/categories/"+id, nil, merchant)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/categories/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Category not found", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodDelete, "/api/v1/categories/"+id, nil, merchant)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
