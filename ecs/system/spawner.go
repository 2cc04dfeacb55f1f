package system

import (
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
	"github.com/milk9111/cubespawner/spawn"
)

// SpawnerSystem forwards the reset key to the spawn controller each tick.
type SpawnerSystem struct {
	controller *spawn.Controller
}

func NewSpawnerSystem(c *spawn.Controller) *SpawnerSystem {
	return &SpawnerSystem{controller: c}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || s.controller == nil || w == nil {
		return
	}
	pressed := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		pressed = pressed || input.ResetPressed
	})
	s.controller.PollInput(pressed)
}

// DebugViewSystem flips overlay switches on the toggle keys.
type DebugViewSystem struct{}

func NewDebugViewSystem() *DebugViewSystem {
	return &DebugViewSystem{}
}

func (s *DebugViewSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.InputComponent.Kind(), component.DebugViewComponent.Kind()) {
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		view, _ := ecs.Get(w, e, component.DebugViewComponent.Kind())
		if input.ToggleGizmoPressed {
			view.ShowArea = !view.ShowArea
		}
		if input.ToggleDebugPressed {
			view.ShowPhysics = !view.ShowPhysics
		}
	}
}
