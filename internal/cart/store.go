package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one distinct product in the cart. Price is the unit price captured
// when the product was first added; later catalog edits do not touch it.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    *string         `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
}

// ItemInput is the catalog-shaped payload used to add a product.
type ItemInput struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image *string
}

// Snapshot is an immutable view of the cart handed to subscribers and readers.
type Snapshot struct {
	Items      []Item          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Store holds the ordered line items one client intends to order. All
// operations are atomic: the store is mutated by concurrent HTTP handlers, so
// a mutex provides the consistency the single-threaded original got for free.
type Store struct {
	mu      sync.Mutex
	items   []Item
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{subs: map[int]func(Snapshot){}}
}

// AddItem merges the product into the cart. Adding an id already present
// increments its quantity; otherwise the item is appended, preserving
// insertion order. A non-positive quantity defaults to 1.
func (s *Store) AddItem(input ItemInput, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == input.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{
			ID:       input.ID,
			Name:     input.Name,
			Price:    input.Price,
			Image:    input.Image,
			Quantity: quantity,
		})
	}
	subs, snap := s.subscribersLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// RemoveItem deletes the line item with the given id. Unknown ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	var subs []func(Snapshot)
	var snap Snapshot
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			subs, snap = s.subscribersLocked()
			break
		}
	}
	s.mu.Unlock()
	notify(subs, snap)
}

// UpdateQuantity sets the quantity for the given id. A quantity of zero or
// below removes the item instead of storing a non-positive count. Unknown ids
// are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	var subs []func(Snapshot)
	var snap Snapshot
	for i := range s.items {
		if s.items[i].ID == id {
			if quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			} else {
				s.items[i].Quantity = quantity
			}
			subs, snap = s.subscribersLocked()
			break
		}
	}
	s.mu.Unlock()
	notify(subs, snap)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	subs, snap := s.subscribersLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// TotalItems returns the total unit count across all line items.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.items)
}

// TotalPrice returns the sum of price times quantity across all line items at
// full precision.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.items)
}

// Snapshot returns the items and both aggregates in one consistent view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restore replaces the cart contents wholesale, dropping entries that violate
// the invariants (blank id, non-positive quantity, duplicate id). Used when
// rehydrating a persisted snapshot; subscribers are notified.
func (s *Store) Restore(items []Item) {
	s.mu.Lock()
	s.items = nil
	seen := map[string]struct{}{}
	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		s.items = append(s.items, item)
	}
	subs, snap := s.subscribersLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// Subscribe registers fn to run after every mutation. The returned cancel
// func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:      copyItems(s.items),
		TotalItems: totalItems(s.items),
		TotalPrice: totalPrice(s.items),
	}
}

// subscribersLocked captures the subscriber list and a consistent snapshot
// while the lock is held. Callbacks themselves run after the lock is
// released so a slow subscriber (or one reading the store back) cannot stall
// or deadlock cart operations.
func (s *Store) subscribersLocked() ([]func(Snapshot), Snapshot) {
	if len(s.subs) == 0 {
		return nil, Snapshot{}
	}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs, s.snapshotLocked()
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func totalItems(items []Item) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalPrice(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
