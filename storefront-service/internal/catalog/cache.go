package catalog

import (
	"context"
	"errors"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

type Cache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
