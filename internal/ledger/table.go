package ledger

import "github.com/iliyamo/homestay-ledger/internal/model"

// table is the shared entity-store primitive behind the in-memory
// backend.  It assigns monotonically increasing ids starting at 1,
// stores rows by id and keeps a secondary index of ids per owner in
// insertion order.  Ids are never reused, even after soft deletion, and
// the owner index never shrinks.  A table is not safe for concurrent use
// on its own; the Memory backend's lock guards every access.
type table[T any] struct {
	counter uint64
	rows    map[uint64]*T
	byOwner map[model.Address][]uint64
	owners  []model.Address // insertion order of first appearance, for deterministic walks
	order   []uint64        // global insertion order of ids
}

func newTable[T any]() *table[T] {
	return &table[T]{
		rows:    make(map[uint64]*T),
		byOwner: make(map[model.Address][]uint64),
	}
}

// insert assigns the next id, stores the row and appends the id to the
// owner's index.  The caller is responsible for stamping the id onto the
// row before storing anything that exposes it.
func (t *table[T]) insert(owner model.Address, row *T) uint64 {
	t.counter++
	id := t.counter
	t.rows[id] = row
	if _, seen := t.byOwner[owner]; !seen {
		t.owners = append(t.owners, owner)
	}
	t.byOwner[owner] = append(t.byOwner[owner], id)
	t.order = append(t.order, id)
	return id
}

// get returns the row for id, or false if that id was never assigned.
func (t *table[T]) get(id uint64) (*T, bool) {
	r, ok := t.rows[id]
	return r, ok
}

// idsByOwner returns a copy of the owner's id index in insertion order.
func (t *table[T]) idsByOwner(owner model.Address) []uint64 {
	ids := t.byOwner[owner]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// all walks every row in insertion order.  Returning false stops the walk.
func (t *table[T]) all(fn func(id uint64, row *T) bool) {
	for _, id := range t.order {
		if !fn(id, t.rows[id]) {
			return
		}
	}
}
