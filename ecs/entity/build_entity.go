package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// builder accumulates components for one new entity and destroys it again
// if any attach fails.
type builder struct {
	w    *ecs.World
	e    ecs.Entity
	name string
	err  error
}

func newBuilder(w *ecs.World, name string, variant component.Variant, pos cp.Vector, radius float64) *builder {
	b := &builder{w: w, name: name}
	if w == nil {
		b.err = fmt.Errorf("%s: world is nil", name)
		return b
	}
	b.e = ecs.CreateEntity(w)
	v := variant
	add(b, component.VariantComponent.Kind(), &v)
	add(b, component.TransformComponent.Kind(), &component.Transform{Pos: pos})
	if radius > 0 {
		add(b, component.BodyComponent.Kind(), &component.Body{Radius: radius})
	}
	return b
}

func add[T any](b *builder, kind component.ComponentKind[T], value *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, kind, value); err != nil {
		b.err = fmt.Errorf("%s: add %T: %w", b.name, value, err)
	}
}

func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		if b.w != nil && b.e.Valid() {
			ecs.DestroyEntity(b.w, b.e)
		}
		return 0, b.err
	}
	return b.e, nil
}

// SetPosition moves e, attaching a Transform if it has none.
func SetPosition(w *ecs.World, e ecs.Entity, pos cp.Vector) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Pos = pos
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// Position returns the position of e, or false if it has no Transform.
func Position(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		return cp.Vector{}, false
	}
	return t.Pos, true
}

// Radius returns the body radius of e, or 0.
func Radius(w *ecs.World, e ecs.Entity) float64 {
	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok || b == nil {
		return 0
	}
	return b.Radius
}

// VariantOf returns the variant tag of e.
func VariantOf(w *ecs.World, e ecs.Entity) component.Variant {
	v, ok := ecs.Get(w, e, component.VariantComponent.Kind())
	if !ok || v == nil {
		return component.VariantNone
	}
	return *v
}
