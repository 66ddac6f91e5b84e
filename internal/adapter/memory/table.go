package memory

import (
	"sort"
	"sync"
)

// table is one entity map plus its id counter, guarded by its own lock so
// creates on different entity types never contend.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	lastID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

// journal records the inverse of each write made inside a transaction. A nil
// journal records nothing.
type journal struct {
	undo []func()
}

func (j *journal) add(fn func()) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

// rollback undoes every recorded write, newest first.
func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// put stores v under id, used to undo updates and removals.
func (t *table[T]) put(id int64, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = v
}

// drop deletes id, used to undo inserts. The id is not reused.
func (t *table[T]) drop(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, id)
}

// insert assigns the next id and stores build(id).
func (t *table[T]) insert(j *journal, build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastID++
	id := t.lastID
	v := build(id)
	t.rows[id] = v
	j.add(func() { t.drop(id) })
	return v
}

// insertUnless inserts build(id) unless some stored row satisfies conflict.
func (t *table[T]) insertUnless(j *journal, conflict func(T) bool, build func(id int64) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, v := range t.rows {
		if conflict(v) {
			var zero T
			return zero, false
		}
	}
	t.lastID++
	id := t.lastID
	v := build(id)
	t.rows[id] = v
	j.add(func() { t.drop(id) })
	return v, true
}

// upsert replaces the first row matching match with update(row), or inserts
// build(id) when nothing matches.
func (t *table[T]) upsert(j *journal, match func(T) bool, update func(T) T, build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, old := range t.rows {
		if match(old) {
			nv := update(old)
			t.rows[id] = nv
			j.add(func() { t.put(id, old) })
			return nv
		}
	}
	t.lastID++
	id := t.lastID
	v := build(id)
	t.rows[id] = v
	j.add(func() { t.drop(id) })
	return v
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

// find returns the row with the lowest id satisfying match.
func (t *table[T]) find(match func(T) bool) (T, bool) {
	rows := t.filter(match)
	if len(rows) == 0 {
		var zero T
		return zero, false
	}
	return rows[0], true
}

// filter returns matching rows ordered by id. A nil match returns every row.
func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id, v := range t.rows {
		if match == nil || match(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// update applies fn to the stored row; ok is false when id is unknown.
func (t *table[T]) update(j *journal, id int64, fn func(T) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	v := fn(old)
	t.rows[id] = v
	j.add(func() { t.put(id, old) })
	return v, true
}

func (t *table[T]) remove(j *journal, id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.rows[id]
	if !ok {
		return false
	}
	delete(t.rows, id)
	j.add(func() { t.put(id, old) })
	return true
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
