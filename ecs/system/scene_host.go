package system

import (
	"fmt"
	"image/color"

	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
	"github.com/milk9111/cubespawner/ecs/entity"
	"github.com/milk9111/cubespawner/spawn"
)

// WorldHost implements spawn.SceneHost over an ECS world. Instances are built
// from prefab templates and tagged so other systems can find them.
type WorldHost struct {
	world   *ecs.World
	builder *entity.Builder
}

func NewWorldHost(w *ecs.World, b *entity.Builder) *WorldHost {
	if b == nil {
		b = entity.NewBuilder()
	}
	return &WorldHost{world: w, builder: b}
}

func (h *WorldHost) Instantiate(template string, pos spawn.Vec3) (spawn.Handle, error) {
	e, err := h.builder.Build(h.world, template)
	if err != nil {
		return 0, err
	}
	if err := entity.SetEntityTransform(h.world, e, pos.X, pos.Y, pos.Z, 0); err != nil {
		ecs.DestroyEntity(h.world, e)
		return 0, fmt.Errorf("instantiate %q: %w", template, err)
	}
	if err := ecs.Add(h.world, e, component.SpawnedTagComponent.Kind(), &component.SpawnedTag{Template: template}); err != nil {
		ecs.DestroyEntity(h.world, e)
		return 0, fmt.Errorf("instantiate %q: %w", template, err)
	}
	return spawn.Handle(e), nil
}

func (h *WorldHost) Destroy(handle spawn.Handle) {
	ecs.DestroyEntity(h.world, ecs.Entity(handle))
}

func (h *WorldHost) Alive(handle spawn.Handle) bool {
	return ecs.IsAlive(h.world, ecs.Entity(handle))
}

// SetColor replaces the instance's own tint; the template spec is untouched.
func (h *WorldHost) SetColor(handle spawn.Handle, c color.Color) {
	e := ecs.Entity(handle)
	if !ecs.IsAlive(h.world, e) {
		return
	}
	_ = ecs.Add(h.world, e, component.TintComponent.Kind(), &component.Tint{Color: c})
}

func (h *WorldHost) SetScale(handle spawn.Handle, s spawn.Vec3) {
	t, ok := ecs.Get(h.world, ecs.Entity(handle), component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.ScaleX = s.X
	t.ScaleY = s.Y
	t.ScaleZ = s.Z
}

func (h *WorldHost) HasPhysicsBody(handle spawn.Handle) bool {
	return ecs.Has(h.world, ecs.Entity(handle), component.PhysicsBodyComponent.Kind())
}

// AddPhysicsBody attaches a dynamic body sized from the instance's shape and
// scaled with its transform. PhysicsSystem creates the chipmunk body next tick.
func (h *WorldHost) AddPhysicsBody(handle spawn.Handle) error {
	e := ecs.Entity(handle)
	body := &component.PhysicsBody{
		Mass:               1,
		Friction:           0.7,
		Elasticity:         0.2,
		ScaleWithTransform: true,
	}
	entity.FitBodyToShape(h.world, e, body)
	return ecs.Add(h.world, e, component.PhysicsBodyComponent.Kind(), body)
}
