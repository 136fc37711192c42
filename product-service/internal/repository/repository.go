package repository

import (
	"context"
	"errors"

	"github.com/nehueninos/nhnproparts/product-service/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
)

// ProductRepository is read-only; products are managed outside this service.
type ProductRepository interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Ping(ctx context.Context) error
}
