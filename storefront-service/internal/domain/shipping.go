package domain

import "github.com/shopspring/decimal"

type ShippingMethod string

const (
	ShippingLocalPickup  ShippingMethod = "local"
	ShippingBranchPickup ShippingMethod = "correo_sucursal"
	ShippingHomeDelivery ShippingMethod = "correo_domicilio"
)

type ShippingOption struct {
	ID          ShippingMethod  `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Days        string          `json:"days"`
}

func (o ShippingOption) IsFree() bool {
	return o.Price.IsZero()
}
