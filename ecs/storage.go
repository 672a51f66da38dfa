package ecs

// store is the type-erased view of a sparseSet that the world needs for
// entity destruction and multi-kind queries.
type store interface {
	has(e Entity) bool
	remove(e Entity) bool
	len() int
	entities() []Entity
}

type entityStore struct {
	generations []generation
	alive       []bool
	free        []entityID
	count       int
}

func (s *entityStore) create() Entity {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.alive[id] = true
		s.count++
		return makeEntity(id, s.generations[id])
	}

	// slot 0 is reserved so the zero Entity is never valid
	if len(s.generations) == 0 {
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
	}
	id := entityID(len(s.generations))
	s.generations = append(s.generations, 1)
	s.alive = append(s.alive, true)
	s.count++
	return makeEntity(id, 1)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.alive[id] = false
	s.generations[id]++
	s.free = append(s.free, id)
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.generations) {
		return false
	}
	return s.alive[id] && s.generations[id] == e.generation()
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.count)
	for id := 1; id < len(s.alive); id++ {
		if s.alive[id] {
			out = append(out, makeEntity(entityID(id), s.generations[id]))
		}
	}
	return out
}
