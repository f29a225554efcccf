package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sita7411/sweetshop-go/internal/domain"
	"github.com/sita7411/sweetshop-go/internal/port"
)

type wishlistClient struct {
	c *Client
}

func NewWishlist(c *Client) port.WishlistService {
	return &wishlistClient{c: c}
}

type wishlistEntryDTO struct {
	ID             string `json:"_id"`
	ProductID      string `json:"productId"`
	SelectedWeight string `json:"selectedWeight"`
}

type toggleWishlistRequest struct {
	ProductID      string `json:"productId"`
	SelectedWeight string `json:"selectedWeight"`
}

type toggleWishlistResponse struct {
	Action string `json:"action"`
}

func (r *wishlistClient) GetWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, "/api/wishlist", nil, &raw); err != nil {
		return nil, fmt.Errorf("c.do: %w", err)
	}

	return mapWishlistEntriesToDomain(normalizeWishlistPayload(raw)), nil
}

func (r *wishlistClient) Toggle(ctx context.Context, productID, weight string) (domain.WishlistAction, error) {
	if productID == "" {
		return "", fmt.Errorf("productID is empty")
	}

	req := toggleWishlistRequest{ProductID: productID, SelectedWeight: weight}

	var resp toggleWishlistResponse
	if err := r.c.do(ctx, http.MethodPost, "/api/wishlist", req, &resp); err != nil {
		return "", fmt.Errorf("c.do: %w", err)
	}

	switch domain.WishlistAction(resp.Action) {
	case domain.ActionAdded:
		return domain.ActionAdded, nil
	case domain.ActionRemoved:
		return domain.ActionRemoved, nil
	default:
		return "", fmt.Errorf("unexpected toggle action %q", resp.Action)
	}
}

func (r *wishlistClient) DeleteEntry(ctx context.Context, entryID string) error {
	if entryID == "" {
		return fmt.Errorf("entryID is empty")
	}

	if err := r.c.do(ctx, http.MethodDelete, "/api/wishlist/"+url.PathEscape(entryID), nil, nil); err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

func (r *wishlistClient) Clear(ctx context.Context) error {
	if err := r.c.do(ctx, http.MethodDelete, "/api/wishlist/clear", nil, nil); err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

// normalizeWishlistPayload accepts the known response shapes for the
// wishlist listing: a bare array, {"data":[...]}, or {"wishlist":[...]}.
// Anything else normalizes to an empty list.
func normalizeWishlistPayload(raw json.RawMessage) []wishlistEntryDTO {
	var bare []wishlistEntryDTO
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}

	var wrapped struct {
		Data     []wishlistEntryDTO `json:"data"`
		Wishlist []wishlistEntryDTO `json:"wishlist"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Data != nil {
			return wrapped.Data
		}
		if wrapped.Wishlist != nil {
			return wrapped.Wishlist
		}
	}

	return nil
}

func mapWishlistEntriesToDomain(dtos []wishlistEntryDTO) []domain.WishlistEntry {
	var entries []domain.WishlistEntry
	for _, dto := range dtos {
		entries = append(entries, domain.WishlistEntry{
			ID:             dto.ID,
			ProductID:      dto.ProductID,
			SelectedWeight: dto.SelectedWeight,
		})
	}
	return entries
}
