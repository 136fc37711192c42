package http

import (
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
)

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type QuoteRequestDTO struct {
	PostalCode string `json:"postal_code"`
}

type SelectShippingRequestDTO struct {
	OptionID domain.ShippingMethod `json:"option_id"`
}

type CartResponseDTO struct {
	SessionID  string                  `json:"session_id"`
	State      domain.CheckoutState    `json:"state"`
	Lines      []CartLineDTO           `json:"lines"`
	ItemCount  int                     `json:"item_count"`
	Subtotal   decimal.Decimal         `json:"subtotal"`
	Shipping   *domain.ShippingOption  `json:"shipping,omitempty"`
	Total      decimal.Decimal         `json:"total"`
	PostalCode string                  `json:"postal_code,omitempty"`
	Options    []domain.ShippingOption `json:"options"`
}

type CartLineDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type QuoteResponseDTO struct {
	PostalCode string                  `json:"postal_code"`
	Province   string                  `json:"province,omitempty"`
	Options    []domain.ShippingOption `json:"options"`
	Message    string                  `json:"message,omitempty"`
}

type OrderResponseDTO struct {
	OrderID     string              `json:"order_id"`
	Total       decimal.Decimal     `json:"total"`
	MessageLink string              `json:"message_link"`
	Order       domain.OrderPayload `json:"order"`
}

type ContactResponseDTO struct {
	Link string `json:"link"`
}

func toCartResponse(s *domain.Session) CartResponseDTO {
	lines := make([]CartLineDTO, 0, len(s.Cart.Lines))
	for _, l := range s.Cart.Lines {
		lines = append(lines, CartLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		})
	}
	options := s.Options
	if options == nil {
		options = []domain.ShippingOption{}
	}
	return CartResponseDTO{
		SessionID:  s.ID,
		State:      s.State,
		Lines:      lines,
		ItemCount:  s.Cart.ItemCount(),
		Subtotal:   s.Cart.Subtotal(),
		Shipping:   s.Cart.Shipping,
		Total:      s.Cart.Total(),
		PostalCode: s.PostalCode,
		Options:    options,
	}
}
