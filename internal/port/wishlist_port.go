package port

import (
	"context"

	"github.com/sita7411/sweetshop-go/internal/domain"
)

// WishlistService is the remote wishlist resource. It is scoped by the
// caller's session credentials rather than an explicit owner ID.
type WishlistService interface {
	GetWishlist(ctx context.Context) ([]domain.WishlistEntry, error)
	// Toggle adds or removes the (productID, weight) pair; the returned
	// action is the server's verdict.
	Toggle(ctx context.Context, productID, weight string) (domain.WishlistAction, error)
	DeleteEntry(ctx context.Context, entryID string) error
	Clear(ctx context.Context) error
}
