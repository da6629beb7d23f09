package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

// Registry reads the persisted stock snapshot. The customer-facing flow
// only ever calls Lookup and Snapshot; Adjust belongs to the admin surface.
type Registry struct {
	store storage.Store
}

func NewRegistry(store storage.Store) *Registry {
	return &Registry{store: store}
}

// Snapshot returns every tracked item. An absent key means nothing is
// tracked yet, which is not an error.
func (r *Registry) Snapshot(ctx context.Context) ([]Item, error) {
	raw, err := r.store.Get(ctx, storage.KeyStockItems)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load stock items: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode stock items: %w", err)
	}
	for _, it := range items {
		if err := it.validate(); err != nil {
			return nil, fmt.Errorf("corrupted stock items: %w", err)
		}
	}
	return items, nil
}

// Lookup reports availability for a product id. The second return value is
// false for untracked products, which callers treat as unlimited stock.
func (r *Registry) Lookup(ctx context.Context, id int) (Availability, bool, error) {
	items, err := r.Snapshot(ctx)
	if err != nil {
		return Availability{}, false, err
	}
	for _, it := range items {
		if it.ID == id {
			return Availability{InStock: it.InStock, Quantity: it.Quantity}, true, nil
		}
	}
	return Availability{}, false, nil
}

// Adjust upserts one tracked item and persists the full snapshot. Admin
// surface only; never reachable from the checkout flow.
func (r *Registry) Adjust(ctx context.Context, item Item) error {
	if err := item.validate(); err != nil {
		return err
	}

	items, err := r.Snapshot(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode stock items: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyStockItems, raw); err != nil {
		return fmt.Errorf("save stock items: %w", err)
	}
	return nil
}
