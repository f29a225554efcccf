package store_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sita7411/sweetshop-go/internal/domain"
)

// fakeCartService is an in-memory stand-in for the backend cart resource.
// It mirrors the server's upsert semantics: quantities merge on
// (productID, weight) and prices come from the catalog snapshot.
type fakeCartService struct {
	mu      sync.Mutex
	lines   map[string][]domain.CartLine
	catalog map[string]decimal.Decimal // "productID/weight" -> price
	nextID  int

	fetchCalls int
	onFetch    func()

	failFetch  bool
	failUpsert bool
	failUpdate bool
	failDelete bool
	failClear  bool
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{
		lines:   make(map[string][]domain.CartLine),
		catalog: make(map[string]decimal.Decimal),
	}
}

func (f *fakeCartService) setPrice(productID, weight string, price int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog[productID+"/"+weight] = decimal.NewFromInt(price)
}

func (f *fakeCartService) GetCart(_ context.Context, ownerID string) ([]domain.CartLine, error) {
	if f.onFetch != nil {
		f.onFetch()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetchCalls++
	if f.failFetch {
		return nil, fmt.Errorf("cart fetch failed")
	}

	lines := make([]domain.CartLine, len(f.lines[ownerID]))
	copy(lines, f.lines[ownerID])
	return lines, nil
}

func (f *fakeCartService) UpsertItem(_ context.Context, ownerID, productID, weight string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpsert {
		return fmt.Errorf("cart upsert failed")
	}

	for i, l := range f.lines[ownerID] {
		if l.ProductID == productID && l.Weight == weight {
			f.lines[ownerID][i].Qty += qty
			return nil
		}
	}

	f.nextID++
	f.lines[ownerID] = append(f.lines[ownerID], domain.CartLine{
		ID:        fmt.Sprintf("line-%d", f.nextID),
		ProductID: productID,
		Weight:    weight,
		Qty:       qty,
		Price:     domain.NewMoney(f.catalog[productID+"/"+weight]),
	})
	return nil
}

func (f *fakeCartService) UpdateQty(_ context.Context, lineID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate {
		return fmt.Errorf("cart update failed")
	}

	for owner, lines := range f.lines {
		for i, l := range lines {
			if l.ID == lineID {
				f.lines[owner][i].Qty = qty
				return nil
			}
		}
	}
	return fmt.Errorf("line %s not found", lineID)
}

func (f *fakeCartService) DeleteItem(_ context.Context, lineID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete {
		return fmt.Errorf("cart delete failed")
	}

	for owner, lines := range f.lines {
		for i, l := range lines {
			if l.ID == lineID {
				f.lines[owner] = append(lines[:i], lines[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("line %s not found", lineID)
}

func (f *fakeCartService) Clear(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failClear {
		return fmt.Errorf("cart clear failed")
	}

	delete(f.lines, ownerID)
	return nil
}

// fakeWishlistService toggles entries as a set over (productID, weight),
// reporting the action the way the backend does.
type fakeWishlistService struct {
	mu      sync.Mutex
	entries []domain.WishlistEntry
	nextID  int

	fetchCalls int

	failFetch  bool
	failToggle bool
	failDelete bool
	failClear  bool
}

func newFakeWishlistService() *fakeWishlistService {
	return &fakeWishlistService{}
}

func (f *fakeWishlistService) GetWishlist(_ context.Context) ([]domain.WishlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetchCalls++
	if f.failFetch {
		return nil, fmt.Errorf("wishlist fetch failed")
	}

	entries := make([]domain.WishlistEntry, len(f.entries))
	copy(entries, f.entries)
	return entries, nil
}

func (f *fakeWishlistService) Toggle(_ context.Context, productID, weight string) (domain.WishlistAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failToggle {
		return "", fmt.Errorf("wishlist toggle failed")
	}

	for i, e := range f.entries {
		if e.ProductID == productID && e.SelectedWeight == weight {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return domain.ActionRemoved, nil
		}
	}

	f.nextID++
	f.entries = append(f.entries, domain.WishlistEntry{
		ID:             fmt.Sprintf("wish-%d", f.nextID),
		ProductID:      productID,
		SelectedWeight: weight,
	})
	return domain.ActionAdded, nil
}

func (f *fakeWishlistService) DeleteEntry(_ context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete {
		return fmt.Errorf("wishlist delete failed")
	}

	for i, e := range f.entries {
		if e.ID == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %s not found", entryID)
}

func (f *fakeWishlistService) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failClear {
		return fmt.Errorf("wishlist clear failed")
	}

	f.entries = nil
	return nil
}

// recordingNotifier captures user-visible outcomes for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}
