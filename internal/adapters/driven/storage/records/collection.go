package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// collection is one JSON array stored under a single key.
// Every mutation reads the whole array, changes it, and writes it back.
type collection[T any] struct {
	kv  driven.KeyValueStore
	key string
	id  func(T) string
}

// load returns every record. Unparsable data is logged and read as empty.
func (c collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("stored %s is unreadable, treating as empty: %v", c.key, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) store(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("store %s: %w", c.key, err)
	}
	return nil
}

// find returns the index of the record with the given id, or -1.
func (c collection[T]) find(items []T, id string) int {
	for i, item := range items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}

// get returns the record with the given id.
func (c collection[T]) get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}
	if i := c.find(items, id); i >= 0 {
		return items[i], true, nil
	}
	return zero, false, nil
}

// upsert replaces the record sharing item's id, or appends it.
// merge receives the existing record when there is one.
func (c collection[T]) upsert(ctx context.Context, item T, merge func(existing *T, item T) T) (T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return item, err
	}

	if i := c.find(items, c.id(item)); i >= 0 {
		if merge != nil {
			item = merge(&items[i], item)
		}
		items[i] = item
	} else {
		if merge != nil {
			item = merge(nil, item)
		}
		items = append(items, item)
	}

	return item, c.store(ctx, items)
}

// remove deletes the records drop selects and reports how many went.
func (c collection[T]) remove(ctx context.Context, drop func(T) bool) (int, error) {
	items, err := c.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := items[:0]
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, c.store(ctx, kept)
}
