package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	domcategory "example.com/shopfront/internal/domain/category"
)

func TestCategoryCodec(t *testing.T) {
	created := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	in := []*domcategory.Category{
		{ID: "c1", Name: "Books", Subcategories: []string{"Fiction"}, CreatedAt: created, UpdatedAt: created},
		{ID: "c2", Name: "Toys", Subcategories: []string{}, CreatedAt: created, UpdatedAt: created},
	}

	b, err := encodeCategories(in)
	require.NoError(t, err)
	require.Contains(t, string(b), `"subcategories":["Fiction"]`)

	out, err := decodeCategories(b)
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = decodeCategories([]byte("{not json"))
	require.Error(t, err)
}

func TestNewCategoryCache_Key(t *testing.T) {
	require.Equal(t, "categories:all", NewCategoryCache(nil, "", time.Minute).key)

	c := NewCategoryCache(nil, "shopfront", time.Minute)
	require.Equal(t, "shopfront:categories:all", c.key)
	require.Equal(t, "shopfront:categories:all:gen", c.genKey)
}

func TestCategoryCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewCategoryCache(client, "test", time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetCategories(ctx)
	require.Error(t, err)
	require.False(t, ok)

	_, err = c.Generation(ctx)
	require.Error(t, err)
	require.Error(t, c.SetCategories(ctx, 0, nil))
	require.Error(t, c.InvalidateCategories(ctx))
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), Options{URL: "http://not-redis"})
	require.Error(t, err)
}
