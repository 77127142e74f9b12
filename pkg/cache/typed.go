package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
)

// List is a typed view over one list category.
type List[T any] struct {
	store    *Store
	category Category
}

// NewList returns a typed view of a list category. It panics on the scalar
// category.
func NewList[T any](store *Store, category Category) *List[T] {
	if !category.IsList() {
		panic(fmt.Sprintf("category %q is not a list category", category))
	}
	return &List[T]{store: store, category: category}
}

// Category returns the category this view reads and writes.
func (l *List[T]) Category() Category {
	return l.category
}

// Get returns the full cached sequence for id in insertion order.
// found is false when nothing has been cached for id, which is distinct from
// an empty sequence.
func (l *List[T]) Get(ctx context.Context, id string) (items []T, found bool, err error) {
	key := Key{Category: l.category, ID: id}

	entries, err := l.store.Range(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	items = make([]T, len(entries))
	for i, data := range entries {
		if err := decode(data, &items[i]); err != nil {
			return nil, false, l.store.corrupt("cache range", key, err)
		}
	}

	l.store.logger.Debug().
		Str("category", string(l.category)).
		Str("identifier", id).
		Int("items", len(items)).
		Msg("Cache hit")
	return items, true, nil
}

// Append serializes item and appends it to id's sequence, refreshing the TTL.
func (l *List[T]) Append(ctx context.Context, id string, item T) error {
	data, err := encode(item)
	if err != nil {
		return apierr.CacheBackend("cache append", fmt.Errorf("encode %s record: %w", l.category, err))
	}
	return l.store.Append(ctx, Key{Category: l.category, ID: id}, data)
}

// Scalar is a typed view over the singleton category.
type Scalar[T any] struct {
	store    *Store
	category Category
}

// NewScalar returns a typed view of a scalar category. It panics on list
// categories.
func NewScalar[T any](store *Store, category Category) *Scalar[T] {
	if category.IsList() {
		panic(fmt.Sprintf("category %q is a list category", category))
	}
	return &Scalar[T]{store: store, category: category}
}

// Get returns the cached record for id. found is false on a miss.
func (s *Scalar[T]) Get(ctx context.Context, id string) (record T, found bool, err error) {
	key := Key{Category: s.category, ID: id}

	data, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return record, false, nil
	}
	if err != nil {
		return record, false, err
	}

	if err := decode(data, &record); err != nil {
		return record, false, s.store.corrupt("cache get", key, err)
	}

	s.store.logger.Debug().
		Str("category", string(s.category)).
		Str("identifier", id).
		Msg("Cache hit")
	return record, true, nil
}

// Set stores record for id with a fresh TTL.
func (s *Scalar[T]) Set(ctx context.Context, id string, record T) error {
	data, err := encode(record)
	if err != nil {
		return apierr.CacheBackend("cache set", fmt.Errorf("encode %s record: %w", s.category, err))
	}
	return s.store.Set(ctx, Key{Category: s.category, ID: id}, data)
}
