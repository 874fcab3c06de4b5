package category

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameKey(t *testing.T) {
	require.Equal(t, "electronics", NameKey("Electronics"))
	require.Equal(t, NameKey("ELECTRONICS "), NameKey(" electronics"))
}

func TestHasSubcategory(t *testing.T) {
	c := &Category{Name: "Electronics", Subcategories: []string{"Laptops", "Phones"}}

	require.True(t, c.HasSubcategory("Laptops"))
	require.False(t, c.HasSubcategory("laptops"), "membership is exact")
	require.False(t, c.HasSubcategory("Tablets"))
}
