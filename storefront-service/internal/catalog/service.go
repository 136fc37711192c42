package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	source Source
	cache  Cache
	sfg    singleflight.Group // collapses concurrent misses into one fetch
}

func NewService(source Source, cache Cache) *Service {
	return &Service{
		source: source,
		cache:  cache,
	}
}

// Products returns the full catalog, from cache when possible.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(productsKey, func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			logger.FromContext(ctx).Warn().Err(err).Msg("catalog cache get failed")
		}

		products, err = s.source.Products(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			defer cancel()
			if err := s.cache.Set(setCtx, products); err != nil {
				logger.FromContext(setCtx).Warn().Err(err).Msg("catalog cache set failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *Service) Product(ctx context.Context, id string) (domain.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Invalidate drops the cached catalog so the next read refetches it.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx)
}
