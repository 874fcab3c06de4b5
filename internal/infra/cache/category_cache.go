package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domcategory "example.com/shopfront/internal/domain/category"
)

const categoriesKey = "categories:all"

// CategoryCache stores the full category list as one JSON value next to a
// generation counter that every invalidation increments.
type CategoryCache struct {
	client redis.UniversalClient
	key    string
	genKey string
	ttl    time.Duration
}

func NewCategoryCache(client redis.UniversalClient, prefix string, ttl time.Duration) *CategoryCache {
	key := categoriesKey
	if prefix != "" {
		key = prefix + ":" + categoriesKey
	}
	return &CategoryCache{client: client, key: key, genKey: key + ":gen", ttl: ttl}
}

type cachedCategory struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Subcategories []string  `json:"subcategories"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func encodeCategories(categories []*domcategory.Category) ([]byte, error) {
	out := make([]cachedCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, cachedCategory{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: c.Subcategories,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	return json.Marshal(out)
}

func decodeCategories(b []byte) ([]*domcategory.Category, error) {
	var in []cachedCategory
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, err
	}
	categories := make([]*domcategory.Category, 0, len(in))
	for _, c := range in {
		categories = append(categories, &domcategory.Category{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: c.Subcategories,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	return categories, nil
}

// GetCategories reports a miss as ok=false with a nil error.
func (c *CategoryCache) GetCategories(ctx context.Context) ([]*domcategory.Category, bool, error) {
	b, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	categories, err := decodeCategories(b)
	if err != nil {
		return nil, false, err
	}
	return categories, true, nil
}

// Generation returns the invalidation counter; an absent key is generation 0.
func (c *CategoryCache) Generation(ctx context.Context) (int64, error) {
	return generation(ctx, c.client, c.genKey)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, cmd getter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

var errGenerationMoved = errors.New("category cache generation moved")

// SetCategories writes the list only while the generation still equals gen.
// A lost race is not an error; the next read repopulates.
func (c *CategoryCache) SetCategories(ctx context.Context, gen int64, categories []*domcategory.Category) error {
	b, err := encodeCategories(categories)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, c.genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return errGenerationMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, b, c.ttl)
			return nil
		})
		return err
	}, c.genKey)

	if errors.Is(err, errGenerationMoved) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateCategories bumps the generation and drops the cached list in one
// transaction.
func (c *CategoryCache) InvalidateCategories(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	return err
}
