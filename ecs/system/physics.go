package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cubespawner/common"
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
)

// minBodyExtent keeps randomly scaled bodies away from zero-size shapes,
// which chipmunk cannot build a moment for.
const minBodyExtent = 0.02

// PhysicsSystem steps a chipmunk space in the X/Y plane. Z does not take part
// in collisions; spawned bodies fall under gravity and land on the floor.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	// world units are meters; the default slop is tuned for pixels
	space.SetCollisionSlop(0.005)
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// BodyCount returns the number of bodies currently simulated.
func (ps *PhysicsSystem) BodyCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.entities = make(map[ecs.Entity]*bodyInfo)
	}

	ps.syncEntities(w)
	ps.space.Step(1.0 / common.TPS)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil && len(info.shapes) > 0 {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			continue
		}

		info := ps.createBodyInfo(*transform, *bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func bodyExtents(transform component.Transform, bodyComp component.PhysicsBody) (width, height, radius float64) {
	width, height, radius = bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 1, 1
	}
	if bodyComp.ScaleWithTransform {
		width *= transform.ScaleX
		height *= transform.ScaleY
		radius *= math.Max(transform.ScaleX, transform.ScaleY)
	}
	width = math.Max(width, minBodyExtent)
	height = math.Max(height, minBodyExtent)
	if radius > 0 {
		radius = math.Max(radius, minBodyExtent/2)
	}
	return width, height, radius
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width, height, radius := bodyExtents(transform, bodyComp)
	center := cp.Vector{X: transform.X, Y: transform.Y}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	if radius > 0 {
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeDynamic)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

// cleanupEntities removes bodies whose entity died or lost its PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
