package ecs

import "github.com/milk9111/cubespawner/ecs/component"

// Add attaches value to e, replacing any existing component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Remove detaches the component of the given kind and reports whether it was present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// Get returns the stored pointer so callers may mutate in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	value, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// ForEach visits every entity holding kind. Iteration runs over a snapshot so
// fn may add, remove or destroy freely.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, value *T)) {
	if w == nil || fn == nil {
		return
	}
	store := w.store(kind.ID(), false)
	if store.Len() == 0 {
		return
	}
	ents := append([]Entity(nil), store.Entities()...)
	for _, e := range ents {
		value, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, value)
	}
}
