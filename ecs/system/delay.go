package system

import (
	"time"

	"github.com/milk9111/cubespawner/common"
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
	"github.com/milk9111/cubespawner/spawn"
)

// DelaySystem counts down Delay components and fires them when they reach
// zero. Fired delays are destroyed before their callback runs, so a callback
// that schedules again gets a fresh entity.
type DelaySystem struct{}

func NewDelaySystem() *DelaySystem {
	return &DelaySystem{}
}

func (s *DelaySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var fire []func()
	ecs.ForEach(w, component.DelayComponent.Kind(), func(e ecs.Entity, d *component.Delay) {
		if d.Frames > 1 {
			d.Frames--
			return
		}
		if d.Fire != nil {
			fire = append(fire, d.Fire)
		}
		ecs.DestroyEntity(w, e)
	})

	for _, fn := range fire {
		fn()
	}
}

// FrameScheduler implements spawn.Scheduler on top of DelaySystem.
type FrameScheduler struct {
	world *ecs.World
}

func NewFrameScheduler(w *ecs.World) *FrameScheduler {
	return &FrameScheduler{world: w}
}

// After schedules fn to run on the DelaySystem tick once delay has passed. A
// non-positive delay fires on the next tick.
func (s *FrameScheduler) After(delay time.Duration, fn func()) spawn.Timer {
	frames := common.FramesFor(delay)
	if frames < 1 {
		frames = 1
	}
	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.DelayComponent.Kind(), &component.Delay{Frames: frames, Fire: fn})
	return &frameTimer{world: s.world, entity: e}
}

type frameTimer struct {
	world  *ecs.World
	entity ecs.Entity
}

func (t *frameTimer) Stop() bool {
	return ecs.DestroyEntity(t.world, t.entity)
}
