package shipping

import (
	"strings"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
)

type Quoter struct {
	table Table
}

func NewQuoter(table Table) (*Quoter, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Quoter{table: table}, nil
}

// Quote returns local pickup, branch pickup and home delivery, in that order.
// A postal code that matches no configured prefix yields no options; callers
// should ask for a different code.
func (q *Quoter) Quote(postalCode string) []domain.ShippingOption {
	region, ok := q.region(postalCode)
	if !ok {
		return nil
	}

	km := decimal.NewFromInt(int64(region.KM))
	branch := q.table.BasePrice.Add(km.Mul(q.table.PerKMRate)).Round(0)
	home := branch.Mul(q.table.HomeDeliveryMultiplier).Round(0)
	eta := q.eta(region.KM)

	return []domain.ShippingOption{
		{
			ID:          domain.ShippingLocalPickup,
			Label:       q.table.LocalPickup.Label,
			Description: q.table.LocalPickup.Description,
			Price:       decimal.Zero,
			Days:        q.table.LocalPickup.ETA,
		},
		{
			ID:    domain.ShippingBranchPickup,
			Label: q.table.BranchLabel,
			Price: branch,
			Days:  eta,
		},
		{
			ID:    domain.ShippingHomeDelivery,
			Label: q.table.HomeLabel,
			Price: home,
			Days:  eta,
		},
	}
}

// Province classifies a postal code, reporting false when no prefix matches.
func (q *Quoter) Province(postalCode string) (string, bool) {
	r, ok := q.region(postalCode)
	return r.Province, ok
}

// region returns the first region, in table order, with a matching prefix.
func (q *Quoter) region(postalCode string) (Region, bool) {
	code := strings.TrimSpace(postalCode)
	if code == "" {
		return Region{}, false
	}
	for _, r := range q.table.Regions {
		for _, p := range r.Prefixes {
			if strings.HasPrefix(code, p) {
				return r, true
			}
		}
	}
	return Region{}, false
}

func (q *Quoter) eta(km int) string {
	for _, t := range q.table.Tiers {
		if km < t.BelowKM {
			return t.ETA
		}
	}
	return q.table.FallbackETA
}
