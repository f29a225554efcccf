package port

import (
	"context"

	"github.com/sita7411/sweetshop-go/internal/domain"
)

// CartService is the remote cart resource. The backend upserts by
// (productID, weight); line-level calls address the server's line ID.
type CartService interface {
	GetCart(ctx context.Context, ownerID string) ([]domain.CartLine, error)
	UpsertItem(ctx context.Context, ownerID, productID, weight string, qty int) error
	UpdateQty(ctx context.Context, lineID string, qty int) error
	DeleteItem(ctx context.Context, lineID string) error
	Clear(ctx context.Context, ownerID string) error
}
