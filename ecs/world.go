package ecs

import "github.com/milk9111/cubespawner/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity drops every component of e and retires its handle. It reports
// whether e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

func (w *World) CreateEntity() Entity {
	return CreateEntity(w)
}

func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
