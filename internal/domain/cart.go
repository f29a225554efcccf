package domain

import (
	"github.com/shopspring/decimal"
)

// CartLine is one purchasable unit in the cart, keyed by (ProductID, Weight).
// Name and ImageURL are display fields refreshed from the server, never
// authoritative.
type CartLine struct {
	ID        string // server-side line identifier
	ProductID string
	Weight    string
	Qty       int
	Price     Money

	Name     string
	ImageURL string
}

// Subtotal is Price * Qty for this line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Amount.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type Cart struct {
	OwnerID string
	Lines   []CartLine
}

// Find returns the line matching (productID, weight) and whether it exists.
func (c Cart) Find(productID, weight string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID && l.Weight == weight {
			return l, true
		}
	}
	return CartLine{}, false
}

// Upsert merges a line into the cart. If a line with the same
// (ProductID, Weight) exists its quantity is increased, otherwise the line
// is appended. A merge that drives the quantity to zero or below removes
// the line entirely.
func (c *Cart) Upsert(line CartLine) {
	for i, l := range c.Lines {
		if l.ProductID == line.ProductID && l.Weight == line.Weight {
			merged := l.Qty + line.Qty
			if merged <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
				return
			}
			c.Lines[i].Qty = merged
			return
		}
	}
	if line.Qty <= 0 {
		return
	}
	c.Lines = append(c.Lines, line)
}

// SetQty replaces the quantity of the matching line. A qty of zero or below
// removes the line. Returns false when no line matches.
func (c *Cart) SetQty(productID, weight string, qty int) bool {
	for i, l := range c.Lines {
		if l.ProductID == productID && l.Weight == weight {
			if qty <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Qty = qty
			}
			return true
		}
	}
	return false
}

// Remove deletes the line matching (productID, weight). Returns false when
// no line matches.
func (c *Cart) Remove(productID, weight string) bool {
	for i, l := range c.Lines {
		if l.ProductID == productID && l.Weight == weight {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Total is the sum of Price*Qty over all lines. An empty cart totals zero.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the sum of quantities across all lines.
func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
