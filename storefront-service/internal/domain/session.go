package domain

import "time"

// Session is the state owned by one storefront visitor, from the first request
// until logout or expiry.
type Session struct {
	ID         string           `json:"id"`
	Cart       Cart             `json:"cart"`
	State      CheckoutState    `json:"state"`
	PostalCode string           `json:"postal_code,omitempty"`
	Province   string           `json:"province,omitempty"`
	Options    []ShippingOption `json:"options,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     CheckoutStateBuilding,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Option(id ShippingMethod) (ShippingOption, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ShippingOption{}, false
}
