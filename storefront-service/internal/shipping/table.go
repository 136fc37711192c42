package shipping

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTable = errors.New("invalid shipping table")

type Region struct {
	Province string
	Prefixes []string
	KM       int
}

// Tier maps distances strictly below BelowKM to an ETA label.
type Tier struct {
	BelowKM int
	ETA     string
}

type Pickup struct {
	Label       string
	Description string
	ETA         string
}

// Table is the static configuration behind a Quoter: prefix and distance
// tables plus the pricing constants.
type Table struct {
	Regions                []Region
	BasePrice              decimal.Decimal
	PerKMRate              decimal.Decimal
	HomeDeliveryMultiplier decimal.Decimal
	Tiers                  []Tier
	FallbackETA            string
	LocalPickup            Pickup
	BranchLabel            string
	HomeLabel              string
}

func DefaultTable() Table {
	return Table{
		Regions: []Region{
			{Province: "Formosa", Prefixes: []string{"36"}, KM: 0},
			{Province: "Chaco", Prefixes: []string{"35"}, KM: 200},
			{Province: "Corrientes", Prefixes: []string{"34"}, KM: 350},
			{Province: "Misiones", Prefixes: []string{"33"}, KM: 600},
			{Province: "SantaFe", Prefixes: []string{"31"}, KM: 900},
			{Province: "EntreRios", Prefixes: []string{"30"}, KM: 1050},
			{Province: "BuenosAires", Prefixes: []string{"10", "11", "12"}, KM: 1200},
			{Province: "Cordoba", Prefixes: []string{"50"}, KM: 1100},
			{Province: "LaPampa", Prefixes: []string{"54"}, KM: 1500},
		},
		BasePrice:              decimal.NewFromInt(3500),
		PerKMRate:              decimal.NewFromInt(6),
		HomeDeliveryMultiplier: decimal.RequireFromString("1.45"),
		Tiers: []Tier{
			{BelowKM: 400, ETA: "3 días hábiles"},
			{BelowKM: 800, ETA: "4 días hábiles"},
			{BelowKM: 1200, ETA: "5 días hábiles"},
		},
		FallbackETA: "6 días hábiles",
		LocalPickup: Pickup{
			Label:       "Retirar por local",
			Description: "Av. 25 de Mayo 737 – Formosa",
			ETA:         "Disponible hoy",
		},
		BranchLabel: "Correo Argentino - Retiro por sucursal",
		HomeLabel:   "Correo Argentino - Envío a domicilio",
	}
}

func (t Table) Validate() error {
	if len(t.Regions) == 0 {
		return fmt.Errorf("%w: no regions", ErrInvalidTable)
	}
	for _, r := range t.Regions {
		if r.Province == "" {
			return fmt.Errorf("%w: region without province", ErrInvalidTable)
		}
		if len(r.Prefixes) == 0 {
			return fmt.Errorf("%w: province %s has no prefixes", ErrInvalidTable, r.Province)
		}
		for _, p := range r.Prefixes {
			if p == "" {
				return fmt.Errorf("%w: province %s has an empty prefix", ErrInvalidTable, r.Province)
			}
		}
		if r.KM < 0 {
			return fmt.Errorf("%w: province %s has negative distance", ErrInvalidTable, r.Province)
		}
	}
	if !t.BasePrice.IsPositive() {
		return fmt.Errorf("%w: base price must be positive", ErrInvalidTable)
	}
	if t.PerKMRate.IsNegative() {
		return fmt.Errorf("%w: negative per km rate", ErrInvalidTable)
	}
	if t.HomeDeliveryMultiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: home delivery multiplier must be greater than 1", ErrInvalidTable)
	}
	for i, tier := range t.Tiers {
		if tier.ETA == "" {
			return fmt.Errorf("%w: tier below %d km has no ETA", ErrInvalidTable, tier.BelowKM)
		}
		if i > 0 && tier.BelowKM <= t.Tiers[i-1].BelowKM {
			return fmt.Errorf("%w: tiers must be sorted by distance", ErrInvalidTable)
		}
	}
	if t.FallbackETA == "" {
		return fmt.Errorf("%w: fallback ETA is required", ErrInvalidTable)
	}
	return nil
}

type tableFile struct {
	BasePrice              float64 `yaml:"base_price"`
	PerKMRate              float64 `yaml:"per_km_rate"`
	HomeDeliveryMultiplier float64 `yaml:"home_delivery_multiplier"`
	Regions                []struct {
		Province string   `yaml:"province"`
		Prefixes []string `yaml:"prefixes"`
		KM       int      `yaml:"km"`
	} `yaml:"regions"`
	Tiers []struct {
		BelowKM int    `yaml:"below_km"`
		ETA     string `yaml:"eta"`
	} `yaml:"tiers"`
	FallbackETA string `yaml:"fallback_eta"`
	LocalPickup *struct {
		Label       string `yaml:"label"`
		Description string `yaml:"description"`
		ETA         string `yaml:"eta"`
	} `yaml:"local_pickup"`
	BranchLabel string `yaml:"branch_label"`
	HomeLabel   string `yaml:"home_label"`
}

// LoadTable reads a YAML table. Labels left out of the file keep their
// DefaultTable values; prices, regions and tiers must be given.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read shipping table: %w", err)
	}
	return ParseTable(data)
}

func ParseTable(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("parse shipping table: %w", err)
	}

	t := DefaultTable()
	t.BasePrice = decimal.NewFromFloat(f.BasePrice)
	t.PerKMRate = decimal.NewFromFloat(f.PerKMRate)
	t.HomeDeliveryMultiplier = decimal.NewFromFloat(f.HomeDeliveryMultiplier)

	t.Regions = make([]Region, 0, len(f.Regions))
	for _, r := range f.Regions {
		t.Regions = append(t.Regions, Region{Province: r.Province, Prefixes: r.Prefixes, KM: r.KM})
	}
	t.Tiers = make([]Tier, 0, len(f.Tiers))
	for _, tr := range f.Tiers {
		t.Tiers = append(t.Tiers, Tier{BelowKM: tr.BelowKM, ETA: tr.ETA})
	}
	if f.FallbackETA != "" {
		t.FallbackETA = f.FallbackETA
	}
	if f.LocalPickup != nil {
		t.LocalPickup = Pickup{Label: f.LocalPickup.Label, Description: f.LocalPickup.Description, ETA: f.LocalPickup.ETA}
	}
	if f.BranchLabel != "" {
		t.BranchLabel = f.BranchLabel
	}
	if f.HomeLabel != "" {
		t.HomeLabel = f.HomeLabel
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}
