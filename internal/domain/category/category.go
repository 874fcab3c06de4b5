package category

import (
	"slices"
	"strings"
	"time"
)

type Category struct {
	ID            string
	Name          string
	Subcategories []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NameKey is the case-insensitive form used for uniqueness.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Category) HasSubcategory(name string) bool {
	return slices.Contains(c.Subcategories, name)
}

// Patch holds the fields of an update; nil means unchanged.
type Patch struct {
	Name          *string
	Subcategories *[]string
}
