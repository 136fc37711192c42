package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order; a product id appears at most once.
type Cart struct {
	Lines    []CartLine      `json:"lines"`
	Shipping *ShippingOption `json:"shipping,omitempty"`
}

// Add appends a line for p, or bumps the quantity of its existing line.
func (c *Cart) Add(p Product, now time.Time) CartLine {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return c.Lines[i]
	}
	line := CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  1,
		AddedAt:   now,
	}
	c.Lines = append(c.Lines, line)
	return line
}

// SetQuantity reports false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Lines[i].Quantity = quantity
	return true
}

func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

func (c *Cart) Line(productID string) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the number of units across all lines (the header badge).
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Total is the subtotal plus the selected shipping price, if any.
func (c *Cart) Total() decimal.Decimal {
	total := c.Subtotal()
	if c.Shipping != nil {
		total = total.Add(c.Shipping.Price)
	}
	return total
}

func (c *Cart) Clear() {
	c.Lines = nil
	c.Shipping = nil
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
