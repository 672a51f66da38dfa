package ecs

// sparseSet stores one component type. dense and values stay packed so
// iteration touches only present components; removal swaps the last element
// into the hole.
type sparseSet[T any] struct {
	sparse map[entityID]int
	dense  []Entity
	values []*T
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{sparse: map[entityID]int{}}
}

func (s *sparseSet[T]) has(e Entity) bool {
	idx, ok := s.sparse[e.id()]
	return ok && s.dense[idx] == e
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.sparse[e.id()]
	if !ok || s.dense[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.sparse[e.id()]; ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.sparse[e.id()] = len(s.dense)
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.sparse[e.id()]
	if !ok || s.dense[idx] != e {
		return false
	}
	last := len(s.dense) - 1
	if idx != last {
		moved := s.dense[last]
		s.dense[idx] = moved
		s.values[idx] = s.values[last]
		s.sparse[moved.id()] = idx
	}
	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	delete(s.sparse, e.id())
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}

// entities returns a copy so callers may add or remove while iterating.
func (s *sparseSet[T]) entities() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
