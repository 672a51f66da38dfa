package ecs

import "github.com/milk9111/voidarena/ecs/component"

// The ForEach family iterates over a snapshot of the driving store, so
// callbacks may create, destroy or detach components freely. Entities that
// die or lose a required component mid-iteration are skipped.

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	if sa == nil || fn == nil {
		return
	}
	for _, e := range sa.entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range smallestOf(sa, sb).entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, e := range smallestOf(sa, sb, sc).entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		c, okC := sc.get(e)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false), storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, e := range smallestOf(sa, sb, sc, sd).entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		c, okC := sc.get(e)
		d, okD := sd.get(e)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

func ForEach5[A, B, C, D, E any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], ke component.ComponentKind[E], fn func(Entity, *A, *B, *C, *D, *E)) {
	sa, sb, sc, sd, se := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false), storeFor(w, kd, false), storeFor(w, ke, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || se == nil || fn == nil {
		return
	}
	for _, e := range smallestOf(sa, sb, sc, sd, se).entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		c, okC := sc.get(e)
		d, okD := sd.get(e)
		v, okE := se.get(e)
		if !okA || !okB || !okC || !okD || !okE {
			continue
		}
		fn(e, a, b, c, d, v)
	}
}

func smallestOf(stores ...store) store {
	best := stores[0]
	for _, s := range stores[1:] {
		if s.len() < best.len() {
			best = s
		}
	}
	return best
}
