package domain

// Variant is a purchasable option of a product, identified by its weight.
// Each variant carries its own selling price.
type Variant struct {
	Weight string
	Price  Money
}

type Product struct {
	ID       string
	Name     string
	ImageURL string
	Variants []Variant
}

// FirstWeight returns the weight of the product's first variant, used when
// a caller does not pick one explicitly.
func (p Product) FirstWeight() (string, bool) {
	if len(p.Variants) == 0 {
		return "", false
	}
	return p.Variants[0].Weight, true
}
