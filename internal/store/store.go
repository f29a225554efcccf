// Package store holds cart and wishlist state for the active user and
// mediates between optimistic local updates and the authoritative backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sita7411/sweetshop-go/internal/domain"
	"github.com/sita7411/sweetshop-go/internal/port"
)

// Store is the single source of truth for the session's cart and wishlist.
// Views read snapshots and dispatch mutations; every mutation talks to the
// backend and either trusts the optimistic local value or reconciles with
// an authoritative re-fetch.
//
// The lock is never held across a network call. Identity changes bump an
// epoch; a response from a call started under an older epoch is dropped
// rather than applied over newer state.
type Store struct {
	cartSvc port.CartService
	wlSvc   port.WishlistService
	notify  port.Notifier
	log     *logrus.Logger

	mu       sync.RWMutex
	identity string
	epoch    uint64
	cart     domain.Cart
	wishlist domain.Wishlist
	cartSync domain.SyncState
	wlSync   domain.SyncState
}

type Option func(*Store)

func WithNotifier(n port.Notifier) Option {
	return func(s *Store) { s.notify = n }
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(cartSvc port.CartService, wlSvc port.WishlistService, opts ...Option) (*Store, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cartSvc is nil")
	}
	if wlSvc == nil {
		return nil, fmt.Errorf("wlSvc is nil")
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	s := &Store{
		cartSvc: cartSvc,
		wlSvc:   wlSvc,
		notify:  port.NopNotifier{},
		log:     log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// SetIdentity switches the store to a new user session. A non-empty
// identity loads both collections from the server; an empty identity is a
// guest session and clears both immediately with no network call, so a
// logged-out view never shows another session's data.
func (s *Store) SetIdentity(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.identity = userID
	s.cart = domain.Cart{OwnerID: userID}
	s.wishlist = domain.Wishlist{OwnerID: userID}
	s.cartSync = domain.SyncIdle
	s.wlSync = domain.SyncIdle
	s.mu.Unlock()

	if userID == "" {
		return nil
	}

	s.log.WithField("user", userID).Debug("loading collections for new identity")

	return errors.Join(
		s.refreshCart(ctx, epoch, false),
		s.refreshWishlist(ctx, epoch, false),
	)
}

// Teardown drops all session state and invalidates any in-flight responses.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.identity = ""
	s.cart = domain.Cart{}
	s.wishlist = domain.Wishlist{}
	s.cartSync = domain.SyncIdle
	s.wlSync = domain.SyncIdle
}

func (s *Store) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// session snapshots the identity and epoch an operation runs under.
func (s *Store) session() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.epoch
}

// --- cart ---

// FetchCart replaces the local cart with the server's. A guest session
// forces an empty cart without a network call. On failure the prior local
// state is left untouched.
func (s *Store) FetchCart(ctx context.Context) error {
	identity, epoch := s.session()

	if identity == "" {
		s.mu.Lock()
		if epoch == s.epoch {
			s.cart = domain.Cart{}
			s.cartSync = domain.SyncIdle
		}
		s.mu.Unlock()
		return nil
	}

	if err := s.refreshCart(ctx, epoch, false); err != nil {
		s.notify.Error("could not load your cart")
		return err
	}
	return nil
}

// AddToCart upserts (product, variant) on the server and refreshes the
// authoritative cart. The server merges quantities when the pair already
// has a line.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, variant domain.Variant, qty int) error {
	identity, epoch := s.session()

	if identity == "" {
		s.notify.Error("please log in to add items to your cart")
		return domain.ErrAuthRequired
	}
	if product.ID == "" {
		s.notify.Error("invalid product")
		return fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	if variant.Weight == "" {
		s.notify.Error("please choose a weight")
		return fmt.Errorf("%w: variant weight is required", domain.ErrValidation)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: qty must be positive, got %d", domain.ErrValidation, qty)
	}

	prev := s.swapCartSync(epoch, domain.SyncPending)

	if err := s.cartSvc.UpsertItem(ctx, identity, product.ID, variant.Weight, qty); err != nil {
		s.setCartSync(epoch, prev)
		s.notify.Error("could not add to cart")
		return fmt.Errorf("cartSvc.UpsertItem: %w", err)
	}

	if err := s.refreshCart(ctx, epoch, false); err != nil {
		s.notify.Error("could not refresh your cart")
		return err
	}

	s.notify.Success("added to cart")
	return nil
}

// RemoveFromCart applies an optimistic local removal, then deletes the line
// on the server. An absent line is a no-op. On server failure the cart is
// reconciled with an authoritative re-fetch.
func (s *Store) RemoveFromCart(ctx context.Context, productID, weight string) error {
	s.mu.Lock()
	epoch := s.epoch
	line, ok := s.cart.Find(productID, weight)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.cart.Remove(productID, weight)
	s.cartSync = domain.SyncPending
	s.mu.Unlock()

	if err := s.cartSvc.DeleteItem(ctx, line.ID); err != nil {
		s.notify.Error("could not remove item")
		s.reconcileCart(ctx, epoch)
		return fmt.Errorf("cartSvc.DeleteItem: %w", err)
	}

	s.setCartSync(epoch, domain.SyncSynced)
	s.notify.Success("removed from cart")
	return nil
}

// UpdateQty sets a line's quantity. A qty of zero or below removes the line
// instead. On success the optimistic local value is trusted without a
// re-fetch; on failure the cart is reconciled.
func (s *Store) UpdateQty(ctx context.Context, productID, weight string, qty int) error {
	if qty <= 0 {
		return s.RemoveFromCart(ctx, productID, weight)
	}

	s.mu.Lock()
	epoch := s.epoch
	line, ok := s.cart.Find(productID, weight)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.cart.SetQty(productID, weight, qty)
	s.cartSync = domain.SyncPending
	s.mu.Unlock()

	if err := s.cartSvc.UpdateQty(ctx, line.ID, qty); err != nil {
		s.notify.Error("could not update quantity")
		s.reconcileCart(ctx, epoch)
		return fmt.Errorf("cartSvc.UpdateQty: %w", err)
	}

	s.setCartSync(epoch, domain.SyncSynced)
	return nil
}

// ClearCart empties the cart optimistically and issues the server-side bulk
// clear. On failure the cart is reconciled since the optimistic empty may
// be wrong.
func (s *Store) ClearCart(ctx context.Context) error {
	identity, epoch := s.session()
	if identity == "" {
		s.notify.Error("please log in")
		return domain.ErrAuthRequired
	}

	s.mu.Lock()
	if epoch == s.epoch {
		s.cart.Lines = nil
		s.cartSync = domain.SyncPending
	}
	s.mu.Unlock()

	if err := s.cartSvc.Clear(ctx, identity); err != nil {
		s.notify.Error("could not clear your cart")
		s.reconcileCart(ctx, epoch)
		return fmt.Errorf("cartSvc.Clear: %w", err)
	}

	s.setCartSync(epoch, domain.SyncSynced)
	s.notify.Success("cart cleared")
	return nil
}

// CartLines returns a snapshot copy of the cart.
func (s *Store) CartLines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.CartLine, len(s.cart.Lines))
	copy(lines, s.cart.Lines)
	return lines
}

func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Count()
}

func (s *Store) CartSyncState() domain.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartSync
}

// --- wishlist ---

// FetchWishlist replaces the local wishlist with the server's. A guest
// session forces an empty wishlist without a network call. Unlike the cart,
// a fetch failure resets the collection to empty: nothing saved is assumed.
func (s *Store) FetchWishlist(ctx context.Context) error {
	_, epoch := s.session()

	if err := s.refreshWishlist(ctx, epoch, false); err != nil {
		s.notify.Error("could not load your wishlist")
		return err
	}
	return nil
}

// ToggleWishlist adds or removes (product, weight) on the server and
// returns the server's verdict. When no weight is given the product's
// first variant is used.
func (s *Store) ToggleWishlist(ctx context.Context, product domain.Product, weight string) (domain.WishlistAction, error) {
	identity, epoch := s.session()

	if identity == "" {
		s.notify.Error("please log in to use the wishlist")
		return "", domain.ErrAuthRequired
	}
	if product.ID == "" {
		s.notify.Error("invalid product")
		return "", fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	if weight == "" {
		first, ok := product.FirstWeight()
		if !ok {
			s.notify.Error("no variant available")
			return "", domain.ErrNoVariant
		}
		weight = first
	}

	prev := s.swapWishlistSync(epoch, domain.SyncPending)

	action, err := s.wlSvc.Toggle(ctx, product.ID, weight)
	if err != nil {
		s.setWishlistSync(epoch, prev)
		s.notify.Error("could not update your wishlist")
		return "", fmt.Errorf("wlSvc.Toggle: %w", err)
	}

	if err := s.refreshWishlist(ctx, epoch, true); err != nil {
		s.log.WithError(err).Warn("wishlist refresh after toggle failed")
	}

	switch action {
	case domain.ActionAdded:
		s.notify.Success("added to wishlist")
	case domain.ActionRemoved:
		s.notify.Success("removed from wishlist")
	}

	return action, nil
}

// RemoveFromWishlist deletes an entry server-side, then re-fetches the
// authoritative wishlist.
func (s *Store) RemoveFromWishlist(ctx context.Context, entryID string) error {
	if entryID == "" {
		return fmt.Errorf("%w: entry id is required", domain.ErrValidation)
	}

	_, epoch := s.session()

	if err := s.wlSvc.DeleteEntry(ctx, entryID); err != nil {
		s.notify.Error("could not remove from wishlist")
		s.reconcileWishlist(ctx, epoch)
		return fmt.Errorf("wlSvc.DeleteEntry: %w", err)
	}

	if err := s.refreshWishlist(ctx, epoch, false); err != nil {
		return err
	}

	s.notify.Success("removed from wishlist")
	return nil
}

// ClearWishlist deletes every entry server-side and empties the local
// collection. On failure the wishlist is reconciled.
func (s *Store) ClearWishlist(ctx context.Context) error {
	identity, epoch := s.session()
	if identity == "" {
		s.notify.Error("please log in")
		return domain.ErrAuthRequired
	}

	if err := s.wlSvc.Clear(ctx); err != nil {
		s.notify.Error("could not clear your wishlist")
		s.reconcileWishlist(ctx, epoch)
		return fmt.Errorf("wlSvc.Clear: %w", err)
	}

	s.mu.Lock()
	if epoch == s.epoch {
		s.wishlist.Entries = nil
		s.wlSync = domain.SyncSynced
	}
	s.mu.Unlock()

	s.notify.Success("wishlist cleared")
	return nil
}

// IsInWishlist reports whether any variant of the product is wishlisted.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist.Contains(productID)
}

// IsVariantInWishlist matches on both product and weight.
func (s *Store) IsVariantInWishlist(productID, weight string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist.ContainsVariant(productID, weight)
}

func (s *Store) WishlistCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist.Count()
}

// WishlistEntries returns a snapshot copy of the wishlist.
func (s *Store) WishlistEntries() []domain.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.WishlistEntry, len(s.wishlist.Entries))
	copy(entries, s.wishlist.Entries)
	return entries
}

func (s *Store) WishlistSyncState() domain.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wlSync
}

// --- refresh and reconciliation ---

// refreshCart fetches the authoritative cart for the epoch's identity and
// replaces the local collection wholesale. A stale epoch drops the result;
// a fetch error leaves the prior local state untouched.
func (s *Store) refreshCart(ctx context.Context, epoch uint64, reconciling bool) error {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil
	}
	identity := s.identity
	prev := s.cartSync
	if reconciling {
		s.cartSync = domain.SyncReconciling
	} else {
		s.cartSync = domain.SyncPending
	}
	s.mu.Unlock()

	if identity == "" {
		s.setCartSync(epoch, domain.SyncIdle)
		return nil
	}

	lines, err := s.cartSvc.GetCart(ctx, identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		s.log.Debug("dropping stale cart response")
		return nil
	}
	if err != nil {
		s.cartSync = prev
		return fmt.Errorf("cartSvc.GetCart: %w", err)
	}

	s.cart = domain.Cart{OwnerID: identity, Lines: lines}
	s.cartSync = domain.SyncSynced
	return nil
}

// refreshWishlist fetches the authoritative wishlist. A guest identity
// forces the collection empty with no network call. A fetch error resets
// the collection to empty, per the storefront's observed behavior.
func (s *Store) refreshWishlist(ctx context.Context, epoch uint64, reconciling bool) error {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil
	}
	identity := s.identity
	if identity == "" {
		s.wishlist = domain.Wishlist{}
		s.wlSync = domain.SyncIdle
		s.mu.Unlock()
		return nil
	}
	if reconciling {
		s.wlSync = domain.SyncReconciling
	} else {
		s.wlSync = domain.SyncPending
	}
	s.mu.Unlock()

	entries, err := s.wlSvc.GetWishlist(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		s.log.Debug("dropping stale wishlist response")
		return nil
	}
	if err != nil {
		s.wishlist = domain.Wishlist{OwnerID: identity}
		s.wlSync = domain.SyncIdle
		return fmt.Errorf("wlSvc.GetWishlist: %w", err)
	}

	s.wishlist = domain.Wishlist{OwnerID: identity, Entries: entries}
	s.wlSync = domain.SyncSynced
	return nil
}

// reconcileCart re-fetches after a failed mutation; local optimistic state
// may have diverged and the authoritative fetch wins.
func (s *Store) reconcileCart(ctx context.Context, epoch uint64) {
	if err := s.refreshCart(ctx, epoch, true); err != nil {
		s.log.WithError(err).Warn("cart reconciliation fetch failed")
	}
}

func (s *Store) reconcileWishlist(ctx context.Context, epoch uint64) {
	if err := s.refreshWishlist(ctx, epoch, true); err != nil {
		s.log.WithError(err).Warn("wishlist reconciliation fetch failed")
	}
}

// --- sync state bookkeeping ---

func (s *Store) setCartSync(epoch uint64, st domain.SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch {
		s.cartSync = st
	}
}

func (s *Store) swapCartSync(epoch uint64, st domain.SyncState) domain.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.cartSync
	if epoch == s.epoch {
		s.cartSync = st
	}
	return prev
}

func (s *Store) setWishlistSync(epoch uint64, st domain.SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch {
		s.wlSync = st
	}
}

func (s *Store) swapWishlistSync(epoch uint64, st domain.SyncState) domain.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.wlSync
	if epoch == s.epoch {
		s.wlSync = st
	}
	return prev
}
