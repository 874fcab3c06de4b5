package sqlstore

import (
	"strings"

	domproduct "example.com/shopfront/internal/domain/product"
)

var sortColumns = map[domproduct.SortField]string{
	domproduct.SortByPrice:     "price",
	domproduct.SortByTitle:     "title",
	domproduct.SortByCreatedAt: "created_at",
	domproduct.SortByUpdatedAt: "updated_at",
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern that matches s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// productWhere translates q into a WHERE clause with ? placeholders.
// It returns an empty clause when q has no predicates.
func productWhere(q domproduct.Query) (string, []any) {
	var clauses []string
	var args []any

	if q.OnlyActive {
		clauses = append(clauses, "is_active = ?")
		args = append(args, true)
	}
	if q.MerchantID != "" {
		clauses = append(clauses, "merchant_id = ?")
		args = append(args, q.MerchantID)
	}
	if q.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, q.Category)
	}
	if q.MinPrice != nil {
		clauses = append(clauses, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		clauses = append(clauses, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		clauses = append(clauses,
			"(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!')")
		args = append(args, pattern, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// productOrder orders by a whitelisted column, then by id ascending.
func productOrder(s domproduct.Sort) string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if s.Direction == domproduct.Ascending {
		dir = "ASC"
	}
	return " ORDER BY " + column + " " + dir + ", id ASC"
}
