package ecs

import "github.com/milk9111/cubespawner/ecs/component"

// Query returns the entities holding every listed kind, in the dense order of
// the smallest store.
func (w *World) Query(kinds ...component.KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate smaller set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		match := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns any one entity holding every listed kind.
func (w *World) First(kinds ...component.KindID) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
