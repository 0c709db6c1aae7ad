package webgl

// locationTable hands out integer ids for uniform location objects and
// remembers which program each id belongs to, so deleting a program frees
// every location it was queried for.
type locationTable[T any] struct {
	next   uint32
	values map[uint32]T
	owners map[uint32][]uint32
}

func newLocationTable[T any]() *locationTable[T] {
	return &locationTable[T]{
		values: make(map[uint32]T),
		owners: make(map[uint32][]uint32),
	}
}

func (t *locationTable[T]) add(program uint32, v T) uint32 {
	id := t.next
	t.next++
	t.values[id] = v
	t.owners[program] = append(t.owners[program], id)
	return id
}

func (t *locationTable[T]) get(id uint32) (T, bool) {
	v, ok := t.values[id]
	return v, ok
}

// drop forgets every location recorded for program.
func (t *locationTable[T]) drop(program uint32) {
	for _, id := range t.owners[program] {
		delete(t.values, id)
	}
	delete(t.owners, program)
}

func (t *locationTable[T]) size() int { return len(t.values) }
