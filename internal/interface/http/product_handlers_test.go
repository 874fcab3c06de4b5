package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func addProduct(t *testing.T, s *testServer, token, title, category string, price float64) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"title":       title,
		"description": "A product worth describing",
		"price":       price,
		"category":    category,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["product"].(map[string]any)["id"].(string)
}

func TestAddProduct(t *testing.T) {
	s := newTestServer(t)
	merchant, merchantID := s.register(t, "Mia", "mia@shop.test", "merchant")
	customer, _ := s.register(t, "Cara", "cara@shop.test", "customer")

	t.Run("merchant adds", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"title":       "Trail Laptop",
			"description": "Rugged and light enough",
			"price":       999.5,
			"category":    " Laptops ",
		}, merchant)
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "Product added successfully", body["message"])
		product := body["product"].(map[string]any)
		require.Equal(t, "Laptops", product["category"])
		require.Equal(t, merchantID, product["merchantId"])
		require.Equal(t, true, product["isActive"])
		require.Equal(t, map[string]any{"id": merchantID, "name": "Mia", "email": "mia@shop.test"}, product["merchant"])
	})

	t.Run("customer forbidden", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"title": "Nope", "description": "Should not land", "price": 1, "category": "x",
		}, customer)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name      string
			body      map[string]any
			wantField string
		}{
			{
				name:      "missing price",
				body:      map[string]any{"title": "Desk", "description": "Solid oak desk", "category": "Furniture"},
				wantField: "price",
			},
			{
				name:      "negative price",
				body:      map[string]any{"title": "Desk", "description": "Solid oak desk", "price": -1, "category": "Furniture"},
				wantField: "price",
			},
			{
				name:      "short description",
				body:      map[string]any{"title": "Desk", "description": "Oak", "price": 10, "category": "Furniture"},
				wantField: "description",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := s.do(t, http.MethodPost, "/api/v1/products", tt.body, merchant)
				require.Equal(t, http.StatusBadRequest, rec.Code)
				require.Contains(t, decodeBody(t, rec)["details"], tt.wantField)
			})
		}
	})

	t.Run("lengths count after trimming", func(t *testing.T) {
		tests := []struct {
			name      string
			body      map[string]any
			wantField string
		}{
			{
				name:      "padded title",
				body:      map[string]any{"title": "  ab  ", "description": "Solid oak desk", "price": 10, "category": "Furniture"},
				wantField: "title",
			},
			{
				name:      "padded description",
				body:      map[string]any{"title": "Desk", "description": "   desc    ", "price": 10, "category": "Furniture"},
				wantField: "description",
			},
			{
				name:      "blank category",
				body:      map[string]any{"title": "Desk", "description": "Solid oak desk", "price": 10, "category": "   "},
				wantField: "category",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := s.do(t, http.MethodPost, "/api/v1/products", tt.body, merchant)
				require.Equal(t, http.StatusBadRequest, rec.Code)
				body := decodeBody(t, rec)
				require.Equal(t, "Validation failed", body["error"])
				require.Contains(t, body["details"], tt.wantField)
			})
		}
	})

	t.Run("stored trimmed", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"title": "  Oak Desk ", "description": "  Solid oak desk  ", "price": 10, "category": "Furniture",
		}, merchant)
		require.Equal(t, http.StatusCreated, rec.Code)
		product := decodeBody(t, rec)["product"].(map[string]any)
		require.Equal(t, "Oak Desk", product["title"])
		require.Equal(t, "Solid oak desk", product["description"])
	})
}

func TestListProducts_FilterScenario(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	for _, price := range []float64{400, 600, 1200, 2000} {
		addProduct(t, s, merchant, "Laptop", "Laptops", price)
	}
	addProduct(t, s, merchant, "Phone", "Phones", 700)

	rec := s.do(t, http.MethodGet,
		"/api/v1/products?category=Laptops&minPrice=500&maxPrice=1500&sortBy=price&sortOrder=asc&page=1&limit=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	products := body["products"].([]any)
	require.Len(t, products, 2)
	require.Equal(t, 600.0, products[0].(map[string]any)["price"])
	require.Equal(t, 1200.0, products[1].(map[string]any)["price"])
	require.Equal(t, map[string]any{"id": products[0].(map[string]any)["merchantId"], "name": "Mia"},
		products[0].(map[string]any)["merchant"])

	require.Equal(t, map[string]any{
		"page":        1.0,
		"totalPages":  1.0,
		"totalDocs":   2.0,
		"hasNextPage": false,
		"hasPrevPage": false,
		"limit":       2.0,
	}, body["pagination"])

	require.Equal(t, map[string]any{
		"category":    "Laptops",
		"minPrice":    500.0,
		"maxPrice":    1500.0,
		"searchQuery": nil,
		"sortBy":      "price",
		"sortOrder":   "asc",
	}, body["filters"])
}

func TestListProducts_Defaults(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	addProduct(t, s, merchant, "Lamp", "Home", 25)

	rec := s.do(t, http.MethodGet, "/api/v1/products?minPrice=cheap&sortBy=popularity&sortOrder=ASC!&page=-3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Len(t, body["products"], 1)

	filters := body["filters"].(map[string]any)
	require.Nil(t, filters["minPrice"])
	require.Nil(t, filters["category"])
	require.Equal(t, "createdAt", filters["sortBy"])
	require.Equal(t, "desc", filters["sortOrder"])

	pagination := body["pagination"].(map[string]any)
	require.Equal(t, 1.0, pagination["page"])
	require.Equal(t, 10.0, pagination["limit"])
}

func TestListProducts_Search(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	addProduct(t, s, merchant, "Walnut Desk", "Furniture", 300)
	addProduct(t, s, merchant, "Desk Lamp", "Lighting", 40)
	addProduct(t, s, merchant, "Armchair", "Furniture", 250)

	rec := s.do(t, http.MethodGet, "/api/v1/products?q=desk", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Len(t, body["products"], 2)
	require.Equal(t, "desk", body["filters"].(map[string]any)["searchQuery"])
}

func TestProductOwnership(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	other, _ := s.register(t, "Max", "max@shop.test", "merchant")
	id := addProduct(t, s, owner, "Lamp", "Home", 25)

	rec := s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"price": 30}, other)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "You can only edit your own products", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodDelete, "/api/v1/products/"+id, nil, other)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "You can only delete your own products", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"price": 30, "category": "Lighting"}, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decodeBody(t, rec)["product"].(map[string]any)
	require.Equal(t, 30.0, product["price"])
	require.Equal(t, "Lighting", product["category"])

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"category": "  "}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Category cannot be empty", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"title": " z  "}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["details"], "title")

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"description": "    short     "}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["details"], "description")

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"description": "  Brass desk lamp  "}, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Brass desk lamp", decodeBody(t, rec)["product"].(map[string]any)["description"])
}

func TestDeleteProduct_IsSoft(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	id := addProduct(t, s, merchant, "Lamp", "Home", 25)

	rec := s.do(t, http.MethodGet, "/api/v1/products/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/products/"+id, nil, merchant)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product deleted successfully", decodeBody(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/v1/products/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodGet, "/api/v1/products", nil, "")
	require.Len(t, decodeBody(t, rec)["products"], 0)

	rec = s.do(t, http.MethodGet, "/api/v1/products/merchant/my-products", nil, merchant)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeBody(t, rec)["products"].([]any)
	require.Len(t, products, 1)
	require.Equal(t, false, products[0].(map[string]any)["isActive"])

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+id, map[string]any{"isActive": true}, merchant)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/products/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMerchantStatsAndPriceRange(t *testing.T) {
	s := newTestServer(t)
	mia, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	maxToken, _ := s.register(t, "Max", "max@shop.test", "merchant")
	addProduct(t, s, mia, "Lamp", "Home", 20)
	addProduct(t, s, mia, "Rug", "Home", 80)
	gone := addProduct(t, s, mia, "Phone", "Phones", 500)
	addProduct(t, s, maxToken, "Sofa", "Home", 900)

	rec := s.do(t, http.MethodDelete, "/api/v1/products/"+gone, nil, mia)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/products/merchant/stats", nil, mia)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)["stats"].(map[string]any)
	require.Equal(t, 2.0, stats["totalProducts"])
	require.Equal(t, 100.0, stats["totalValue"])
	require.Equal(t, []any{map[string]any{"category": "Home", "count": 2.0}}, stats["categories"])

	rec = s.do(t, http.MethodGet, "/api/v1/products/price-range", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"min": 20.0, "max": 900.0}, decodeBody(t, rec)["priceRange"])
}

func TestListProducts_PageFarBeyondLast(t *testing.T) {
	s := newTestServer(t)
	merchant, _ := s.register(t, "Mia", "mia@shop.test", "merchant")
	addProduct(t, s, merchant, "Lamp", "Home", 25)

	for _, page := range []string{"1000000000000000000", "9223372036854775807", "3"} {
		t.Run(page, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/v1/products?limit=10&page="+page, nil, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			body := decodeBody(t, rec)
			require.Len(t, body["products"], 0)
			pagination := body["pagination"].(map[string]any)
			require.Equal(t, 1.0, pagination["totalDocs"])
			require.Equal(t, false, pagination["hasNextPage"])
			require.Equal(t, true, pagination["hasPrevPage"])
		})
	}
}

func TestGetProduct_Unknown(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/products/does-not-exist", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
