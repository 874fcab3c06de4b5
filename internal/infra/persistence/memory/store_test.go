package memory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domcategory "example.com/shopfront/internal/domain/category"
	domproduct "example.com/shopfront/internal/domain/product"
	domuser "example.com/shopfront/internal/domain/user"
)

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	u, err := repo.Create(ctx, &domuser.User{Name: "Ann", Email: "ann@shop.test", IsActive: true})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = repo.Create(ctx, &domuser.User{Name: "Ann 2", Email: "ANN@shop.test"})
	require.ErrorIs(t, err, domuser.ErrEmailAlreadyUsed)

	found, err := repo.GetByEmail(ctx, " Ann@Shop.Test ")
	require.NoError(t, err)
	require.Equal(t, u.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "ann@shop.test")
	require.NoError(t, err)
	require.True(t, exists)

	users, err := repo.ListByIDs(ctx, []string{u.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestCategoryRepository_NameKeyUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().WithIDs(sequentialIDs("c")).Categories()

	electronics, err := repo.Create(ctx, &domcategory.Category{Name: "Electronics"})
	require.NoError(t, err)
	books, err := repo.Create(ctx, &domcategory.Category{Name: "Books"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domcategory.Category{Name: "electronics"})
	require.ErrorIs(t, err, domcategory.ErrCategoryNameExists)

	books.Name = "ELECTRONICS"
	_, err = repo.Update(ctx, books)
	require.ErrorIs(t, err, domcategory.ErrCategoryNameExists)

	found, err := repo.FindByName(ctx, "ELECTRONICS", "")
	require.NoError(t, err)
	require.Equal(t, electronics.ID, found.ID)

	found, err = repo.FindByName(ctx, "electronics", electronics.ID)
	require.NoError(t, err)
	require.Nil(t, found)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Books", list[0].Name)
	require.Equal(t, "Electronics", list[1].Name)

	require.NoError(t, repo.Delete(ctx, electronics.ID))
	require.ErrorIs(t, repo.Delete(ctx, electronics.ID), domcategory.ErrCategoryNotFound)

	_, err = repo.Create(ctx, &domcategory.Category{Name: "electronics"})
	require.NoError(t, err, "name is free again after delete")
}

func TestCategoryRepository_ConcurrentCreateOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Categories()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "Garden"
			if i%2 == 0 {
				name = "garden"
			}
			_, err := repo.Create(ctx, &domcategory.Category{Name: name})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domcategory.ErrCategoryNameExists)
		conflicts++
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 19, conflicts)
}

func TestProductRepository_FindPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().WithIDs(sequentialIDs("p")).Products()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, price := range []float64{400, 600, 1200, 2000} {
		_, err := repo.Create(ctx, &domproduct.Product{
			Title:      fmt.Sprintf("Laptop %d", i),
			Price:      price,
			Category:   "Laptops",
			MerchantID: "m1",
			IsActive:   true,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	res, err := repo.Find(ctx, domproduct.FindOptions{
		Query: domproduct.Query{OnlyActive: true, Category: "Laptops"},
		Sort:  domproduct.Sort{Field: domproduct.SortByPrice, Direction: domproduct.Ascending},
		Page:  domproduct.Page{Number: 2, Limit: 3},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.Equal(t, 2000.0, res.Items[0].Price)
	require.Equal(t, int64(4), res.Pagination.TotalItems)
	require.Equal(t, 2, res.Pagination.TotalPages)
	require.True(t, res.Pagination.HasPrevPage)
	require.False(t, res.Pagination.HasNextPage)

	count, err := repo.Count(ctx, domproduct.Query{MerchantID: "m1"})
	require.NoError(t, err)
	require.Equal(t, int64(4), count)
}

func TestProductRepository_FindPastTheEnd(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	_, err := repo.Create(ctx, &domproduct.Product{Title: "Desk", Price: 100, Category: "Furniture", MerchantID: "m1", IsActive: true})
	require.NoError(t, err)

	for _, page := range []domproduct.Page{
		{Number: 2, Limit: 10},
		{Number: math.MaxInt, Limit: 10},
		{Number: math.MaxInt / 10, Limit: 10},
	} {
		res, err := repo.Find(ctx, domproduct.FindOptions{
			Sort: domproduct.Sort{Field: domproduct.SortByCreatedAt, Direction: domproduct.Descending},
			Page: page,
		})
		require.NoError(t, err)
		require.Empty(t, res.Items)
		require.Equal(t, int64(1), res.Pagination.TotalItems)
	}
}

func TestProductRepository_UpdateKeepsMerchant(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	p, err := repo.Create(ctx, &domproduct.Product{Title: "Desk", Price: 100, Category: "Furniture", MerchantID: "m1", IsActive: true})
	require.NoError(t, err)

	p.MerchantID = "m2"
	p.Price = 120
	updated, err := repo.Update(ctx, p)
	require.NoError(t, err)
	require.Equal(t, "m1", updated.MerchantID)
	require.Equal(t, 120.0, updated.Price)

	_, err = repo.Update(ctx, &domproduct.Product{ID: "nope"})
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestProductRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	pr, err := repo.PriceRange(ctx)
	require.NoError(t, err)
	require.Equal(t, domproduct.PriceRange{}, pr)

	seed := []domproduct.Product{
		{Price: 10, Category: "Books", MerchantID: "m1", IsActive: true},
		{Price: 30, Category: "Books", MerchantID: "m1", IsActive: true},
		{Price: 99, Category: "Games", MerchantID: "m1", IsActive: false},
		{Price: 5, Category: "Games", MerchantID: "m2", IsActive: true},
	}
	for i := range seed {
		_, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	pr, err = repo.PriceRange(ctx)
	require.NoError(t, err)
	require.Equal(t, domproduct.PriceRange{Min: 5, Max: 30}, pr)

	stats, err := repo.CategoryStats(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, []domproduct.CategoryCount{{Category: "Books", Count: 2}}, stats)

	total, err := repo.TotalValue(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, 40.0, total)
}
