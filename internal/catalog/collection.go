package catalog

import (
	"fmt"

	"github.com/nhle/menu-catalog/internal/model"
)

// Collection is an ordered list of entities keyed by ID. Element order is
// display order. Values go in and come out as deep copies, so callers can
// never alias stored state.
type Collection[T model.Entry] struct {
	kind  string
	items []T
	clone func(T) T
}

func newCollection[T model.Entry](kind string, clone func(T) T) *Collection[T] {
	return &Collection[T]{kind: kind, clone: clone}
}

// fork returns a copy whose element slice can be changed without
// affecting c. Stored values are only ever replaced, never mutated in
// place, so the copy may share their inner slices.
func (c *Collection[T]) fork() *Collection[T] {
	return &Collection[T]{
		kind:  c.kind,
		items: append([]T(nil), c.items...),
		clone: c.clone,
	}
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) index(id string) int {
	for i, v := range c.items {
		if v.GetID() == id {
			return i
		}
	}
	return -1
}

// Has reports whether an entity with id exists.
func (c *Collection[T]) Has(id string) bool { return c.index(id) >= 0 }

// Get returns a copy of the entity with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

// All returns copies of every entity in display order.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = c.clone(v)
	}
	return out
}

// IDs returns the entity IDs in display order.
func (c *Collection[T]) IDs() []string {
	ids := make([]string, len(c.items))
	for i, v := range c.items {
		ids[i] = v.GetID()
	}
	return ids
}

// Prepend inserts copies of vs at the head, keeping their relative order.
func (c *Collection[T]) Prepend(vs ...T) {
	head := make([]T, 0, len(vs)+len(c.items))
	for _, v := range vs {
		head = append(head, c.clone(v))
	}
	c.items = append(head, c.items...)
}

// Append inserts a copy of v at the tail.
func (c *Collection[T]) Append(v T) {
	c.items = append(c.items, c.clone(v))
}

// Replace swaps in a copy of v for the entity with the same ID, keeping
// its position. It reports false if no such entity exists.
func (c *Collection[T]) Replace(v T) bool {
	i := c.index(v.GetID())
	if i < 0 {
		return false
	}
	c.items[i] = c.clone(v)
	return true
}

// Delete removes the entity with id and returns it.
func (c *Collection[T]) Delete(id string) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	v := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return v, true
}

// DeleteWhere removes every entity for which match returns true and
// returns how many were removed.
func (c *Collection[T]) DeleteWhere(match func(T) bool) int {
	kept := c.items[:0:0]
	for _, v := range c.items {
		if !match(v) {
			kept = append(kept, v)
		}
	}
	n := len(c.items) - len(kept)
	c.items = kept
	return n
}

// Reorder rearranges the collection to the order given by ids. ids must
// be a permutation of the current IDs; otherwise nothing changes and an
// error wrapping ErrNotPermutation is returned.
func (c *Collection[T]) Reorder(ids []string) error {
	if len(ids) != len(c.items) {
		return fmt.Errorf("reordering %ss: got %d ids for %d entries: %w",
			c.kind, len(ids), len(c.items), ErrNotPermutation)
	}
	byID := make(map[string]T, len(c.items))
	for _, v := range c.items {
		byID[v.GetID()] = v
	}
	next := make([]T, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return fmt.Errorf("reordering %ss: unknown or repeated id %s: %w",
				c.kind, id, ErrNotPermutation)
		}
		delete(byID, id)
		next = append(next, v)
	}
	c.items = next
	return nil
}

// replaceAll sets the contents to copies of vs.
func (c *Collection[T]) replaceAll(vs []T) {
	c.items = make([]T, len(vs))
	for i, v := range vs {
		c.items[i] = c.clone(v)
	}
}
