package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/sita7411/sweetshop-go/internal/domain"
	"github.com/sita7411/sweetshop-go/internal/port"
)

type cartClient struct {
	c *Client
}

func NewCart(c *Client) port.CartService {
	return &cartClient{c: c}
}

type cartLineDTO struct {
	ID           string           `json:"_id"`
	ProductID    string           `json:"productId"`
	Weight       string           `json:"weight"`
	Qty          int              `json:"qty"`
	Price        *decimal.Decimal `json:"price"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Name         string           `json:"name"`
	Image        string           `json:"image"`
}

type upsertCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Weight    string `json:"weight"`
	Qty       int    `json:"qty"`
}

type updateQtyRequest struct {
	Qty int `json:"qty"`
}

func (r *cartClient) GetCart(ctx context.Context, ownerID string) ([]domain.CartLine, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	var dtos []cartLineDTO
	if err := r.c.do(ctx, http.MethodGet, "/api/cart/"+url.PathEscape(ownerID), nil, &dtos); err != nil {
		return nil, fmt.Errorf("c.do: %w", err)
	}

	return mapCartLinesToDomain(dtos), nil
}

func (r *cartClient) UpsertItem(ctx context.Context, ownerID, productID, weight string, qty int) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}

	req := upsertCartRequest{
		UserID:    ownerID,
		ProductID: productID,
		Weight:    weight,
		Qty:       qty,
	}
	if err := r.c.do(ctx, http.MethodPost, "/api/cart", req, nil); err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

func (r *cartClient) UpdateQty(ctx context.Context, lineID string, qty int) error {
	if lineID == "" {
		return fmt.Errorf("lineID is empty")
	}

	if err := r.c.do(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(lineID), updateQtyRequest{Qty: qty}, nil); err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

func (r *cartClient) DeleteItem(ctx context.Context, lineID string) error {
	if lineID == "" {
		return fmt.Errorf("lineID is empty")
	}

	if err := r.c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(lineID), nil, nil); err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

func (r *cartClient) Clear(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.c.do(ctx, http.MethodDelete, "/api/cart/clear/"+url.PathEscape(ownerID), nil, nil); err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

// mapCartLineToDomain picks the first present of price/sellingPrice, falling
// back to zero: older backend rows carry only sellingPrice.
func mapCartLineToDomain(dto cartLineDTO) domain.CartLine {
	amount := decimal.Zero
	switch {
	case dto.Price != nil:
		amount = *dto.Price
	case dto.SellingPrice != nil:
		amount = *dto.SellingPrice
	}

	return domain.CartLine{
		ID:        dto.ID,
		ProductID: dto.ProductID,
		Weight:    dto.Weight,
		Qty:       dto.Qty,
		Price:     domain.NewMoney(amount),
		Name:      dto.Name,
		ImageURL:  dto.Image,
	}
}

func mapCartLinesToDomain(dtos []cartLineDTO) []domain.CartLine {
	var lines []domain.CartLine
	for _, dto := range dtos {
		lines = append(lines, mapCartLineToDomain(dto))
	}
	return lines
}
