package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the catalog service's JSON document.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}
