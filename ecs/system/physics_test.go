package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
	"github.com/milk9111/cubespawner/ecs/entity"
	"github.com/milk9111/cubespawner/spawn"
)

func stepPhysics(w *ecs.World, ps *PhysicsSystem, ticks int) {
	for i := 0; i < ticks; i++ {
		ps.Update(w)
	}
}

func TestPhysicsCubeSettlesOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	b := entity.NewBuilder()
	_, err := b.Build(w, "floor")
	require.NoError(t, err)

	host := NewWorldHost(w, b)
	h, err := host.Instantiate("cube", spawn.Vec3{X: 1, Y: spawn.SpawnHeight, Z: 2})
	require.NoError(t, err)
	require.NoError(t, host.AddPhysicsBody(h))

	ps := NewPhysicsSystem()
	stepPhysics(w, ps, 4*60)

	assert.Equal(t, 2, ps.BodyCount())
	tr, _ := ecs.Get(w, ecs.Entity(h), component.TransformComponent.Kind())
	assert.InDelta(t, 0.5, tr.Y, 0.05, "cube should rest on the floor top")
	assert.InDelta(t, 1.0, tr.X, 0.05)
	assert.Equal(t, 2.0, tr.Z, "depth is not simulated")
}

func TestPhysicsScaledBodyUsesTransformScale(t *testing.T) {
	w := ecs.NewWorld()
	b := entity.NewBuilder()
	_, err := b.Build(w, "floor")
	require.NoError(t, err)

	host := NewWorldHost(w, b)
	h, err := host.Instantiate("cube", spawn.Vec3{Y: spawn.SpawnHeight})
	require.NoError(t, err)
	host.SetScale(h, spawn.Vec3{X: 1, Y: 2, Z: 1})
	require.NoError(t, host.AddPhysicsBody(h))

	ps := NewPhysicsSystem()
	stepPhysics(w, ps, 4*60)

	tr, _ := ecs.Get(w, ecs.Entity(h), component.TransformComponent.Kind())
	assert.InDelta(t, 1.0, tr.Y, 0.05)
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	w := ecs.NewWorld()
	host := NewWorldHost(w, entity.NewBuilder())

	h, err := host.Instantiate("crate", spawn.Vec3{Y: spawn.SpawnHeight})
	require.NoError(t, err)

	ps := NewPhysicsSystem()
	ps.Update(w)
	require.Equal(t, 1, ps.BodyCount())

	body, _ := ecs.Get(w, ecs.Entity(h), component.PhysicsBodyComponent.Kind())
	require.NotNil(t, body.Body)

	host.Destroy(h)
	ps.Update(w)
	assert.Equal(t, 0, ps.BodyCount())
}

func TestPhysicsWithoutFloorKeepsFalling(t *testing.T) {
	w := ecs.NewWorld()
	host := NewWorldHost(w, entity.NewBuilder())

	h, err := host.Instantiate("sphere", spawn.Vec3{Y: spawn.SpawnHeight})
	require.NoError(t, err)
	require.NoError(t, host.AddPhysicsBody(h))

	ps := NewPhysicsSystem()
	stepPhysics(w, ps, 60)

	tr, _ := ecs.Get(w, ecs.Entity(h), component.TransformComponent.Kind())
	assert.Less(t, tr.Y, spawn.SpawnHeight-3)
}
