package category

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	dom "example.com/shopfront/internal/domain/category"
)

// Cache holds the full, name-ordered category list. Every invalidation
// bumps a generation, and SetCategories stores nothing unless the generation
// is still the one read before the store was queried.
type Cache interface {
	GetCategories(ctx context.Context) ([]*dom.Category, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetCategories(ctx context.Context, generation int64, categories []*dom.Category) error
	InvalidateCategories(ctx context.Context) error
}

type Service struct {
	repo  dom.Repository
	cache Cache
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo dom.Repository, cache Cache, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "category")),
		now:   time.Now,
	}
}

type CreateInput struct {
	Name          string
	Subcategories []string
}

const minNameLength = 2

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", dom.ErrCategoryInvalidName
	}
	return name, nil
}

func normalizeSubcategories(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*dom.Category, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dom.ErrCategoryNameExists
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &dom.Category{
		Name:          name,
		Subcategories: normalizeSubcategories(in.Subcategories),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("Category created", zap.String("category_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*dom.Category, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetCategories(ctx)
		if err != nil {
			s.log.Warn("Category cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		gen, err := s.cache.Generation(ctx)
		if err != nil {
			s.log.Warn("Category cache generation read failed", zap.Error(err))
		} else {
			generation, cacheable = gen, true
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.SetCategories(ctx, generation, categories); err != nil {
			s.log.Warn("Category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch dom.Patch) (*dom.Category, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		clash, err := s.repo.FindByName(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, dom.ErrCategoryNameExists
		}
		existing.Name = name
	}
	if patch.Subcategories != nil {
		existing.Subcategories = normalizeSubcategories(*patch.Subcategories)
	}
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("Category deleted", zap.String("category_id", id))
	return nil
}

func (s *Service) HasSubcategory(ctx context.Context, id string, subcategory string) (bool, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return c.HasSubcategory(subcategory), nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		s.log.Warn("Category cache invalidation failed", zap.Error(err))
	}
}
