package memory

import (
	"sort"

	"github.com/mohae/deepcopy"

	"github.com/frahmantamala/bizmanager/internal/storage"
)

// table holds one record kind keyed by id. Rows are deep copied on the way in
// and out, so neither the caller's record nor a returned one shares optional
// fields with the stored row. Callers hold Store.mu.
type table[T any] struct {
	seq  int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

func clone[T any](row T) *T {
	out := deepcopy.Copy(row).(T)
	return &out
}

func (t *table[T]) put(id int64, row T) *T {
	t.rows[id] = *clone(row)
	return clone(row)
}

func (t *table[T]) get(id int64) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(row), nil
}

// list returns matching rows in ascending id order.
func (t *table[T]) list(match func(*T) bool) []*T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*T, 0)
	for _, id := range ids {
		row := t.rows[id]
		if match(&row) {
			out = append(out, clone(row))
		}
	}
	return out
}

func (t *table[T]) update(id int64, patch storage.Patch) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	merged, err := storage.Merge(&row, patch)
	if err != nil {
		return nil, err
	}
	return t.put(id, *merged), nil
}

func (t *table[T]) delete(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}
