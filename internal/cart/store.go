package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marawan13001/zmarketfr-sub000/internal/stock"
	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

// Store owns the session-scoped cart collection. Every successful mutation
// persists the whole collection synchronously, so a reload reproduces the
// same lines in the same order.
type Store struct {
	sessionID string
	storage   storage.Store
	registry  *stock.Registry
}

func NewStore(sessionID string, st storage.Store, registry *stock.Registry) *Store {
	return &Store{sessionID: sessionID, storage: st, registry: registry}
}

func (s *Store) key() string {
	return storage.SessionKey(s.sessionID, storage.KeyCartItems)
}

// Get loads and validates the persisted collection. An absent key is an
// empty cart.
func (s *Store) Get(ctx context.Context) ([]Item, error) {
	raw, err := s.storage.Get(ctx, s.key())
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	for _, it := range items {
		if err := it.validate(); err != nil {
			return nil, fmt.Errorf("corrupted cart: %w", err)
		}
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, s.key(), raw); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// AddItem puts one unit of the product in the cart. For an existing line
// the increment is gated on the registry still having more on hand than the
// line already holds; on rejection the collection is unchanged.
func (s *Store) AddItem(ctx context.Context, p Product) ([]Item, error) {
	items, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	avail, tracked, err := s.registry.Lookup(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == p.ID {
			if tracked && avail.Quantity <= items[i].Quantity {
				return nil, ErrMaxAvailable
			}
			items[i].Quantity++
			if err := s.save(ctx, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}

	if tracked && avail.Quantity < 1 {
		return nil, ErrMaxAvailable
	}

	inStock := true
	if tracked {
		inStock = avail.InStock
	}
	line, err := NewItem(p.ID, p.Name, p.Image, p.Price, 1, inStock)
	if err != nil {
		return nil, err
	}
	items = append(items, line)

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets a line's quantity. Asking for more than the registry
// has on hand is rejected and the collection is unchanged. A quantity of
// zero or less removes the line; the cart never holds a zero-quantity line.
func (s *Store) UpdateQuantity(ctx context.Context, id, quantity int) ([]Item, error) {
	items, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
		if err := s.save(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	avail, tracked, err := s.registry.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if tracked && quantity > avail.Quantity {
		return nil, ErrInsufficientStock
	}

	items[idx].Quantity = quantity
	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem deletes the line unconditionally. Removing an absent id is a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, id int) ([]Item, error) {
	items, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if err := s.save(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reconcile recomputes every line's InStock flag from the current registry
// snapshot. Untracked products default to in stock. Quantities already held
// are never clamped here; only further increments are blocked by AddItem.
func (s *Store) Reconcile(ctx context.Context) ([]Item, error) {
	items, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	changed := false
	for i := range items {
		avail, tracked, err := s.registry.Lookup(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		inStock := true
		if tracked {
			inStock = avail.InStock
		}
		if items[i].InStock != inStock {
			items[i].InStock = inStock
			changed = true
		}
	}

	if changed {
		if err := s.save(ctx, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Clear empties the cart in storage.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key()); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
