package memory

import (
	"slices"
	"sync"
)

// collection is a map-backed table with a monotonic id counter.
// Records are stored and returned by value so callers never share state with the table.
type collection[T any] struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]T
	id     func(*T) int64
	setID  func(*T, int64)
	clone  func(T) T
}

func newCollection[T any](id func(*T) int64, setID func(*T, int64), clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{
		items: make(map[int64]T),
		id:    id,
		setID: setID,
		clone: clone,
	}
}

func (c *collection[T]) create(rec *T) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.setID(rec, c.nextID)
	c.items[c.nextID] = c.clone(*rec)
	return c.nextID
}

func (c *collection[T]) get(id int64) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.items[id]
	if !ok {
		return nil, false
	}
	out := c.clone(rec)
	return &out, true
}

// list returns the records matching keep (all when keep is nil) ordered by id.
func (c *collection[T]) list(keep func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		rec := c.items[id]
		if keep != nil && !keep(&rec) {
			continue
		}
		out = append(out, c.clone(rec))
	}
	return out
}

func (c *collection[T]) update(rec *T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.id(rec)
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = c.clone(*rec)
	return true
}

func (c *collection[T]) delete(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}
