package domain

// WishlistEntry is a saved product+variant. SelectedWeight may be empty for
// single-variant products; identity is the (ProductID, SelectedWeight) pair.
type WishlistEntry struct {
	ID             string // server-side entry identifier
	ProductID      string
	SelectedWeight string
}

// Wishlist is a set over (ProductID, SelectedWeight); toggling a present
// pair removes it.
type Wishlist struct {
	OwnerID string
	Entries []WishlistEntry
}

// Contains reports whether any variant of the product is wishlisted.
func (w Wishlist) Contains(productID string) bool {
	for _, e := range w.Entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// ContainsVariant matches on both product and weight.
func (w Wishlist) ContainsVariant(productID, weight string) bool {
	for _, e := range w.Entries {
		if e.ProductID == productID && e.SelectedWeight == weight {
			return true
		}
	}
	return false
}

func (w Wishlist) Count() int {
	return len(w.Entries)
}

// WishlistAction is the server's verdict on a toggle call. It is taken from
// the response, never inferred locally.
type WishlistAction string

const (
	ActionAdded   WishlistAction = "added"
	ActionRemoved WishlistAction = "removed"
)
