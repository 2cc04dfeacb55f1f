package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
	"github.com/milk9111/cubespawner/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"floor_tag":    addFloorTag,
	"transform":    addTransform,
	"shape":        addShape,
	"tint":         addTint,
	"render_layer": addRenderLayer,
	"physics_body": addPhysicsBody,
}

// physics_body reads the transform scale, so transform goes first.
var componentBuildOrder = []string{
	"floor_tag",
	"transform",
	"shape",
	"tint",
	"render_layer",
	"physics_body",
}

// Builder instantiates prefab templates into a world. Parsed specs are cached
// per template until Invalidate is called for it.
type Builder struct {
	cache map[string]prefabs.EntityBuildSpec
}

func NewBuilder() *Builder {
	return &Builder{cache: make(map[string]prefabs.EntityBuildSpec)}
}

// Invalidate drops the cached spec for a template so the next Build rereads it.
func (b *Builder) Invalidate(prefabPath string) {
	if b == nil {
		return
	}
	delete(b.cache, prefabs.Clean(prefabPath))
}

func (b *Builder) spec(prefabPath string) (prefabs.EntityBuildSpec, error) {
	key := prefabs.Clean(prefabPath)
	if spec, ok := b.cache[key]; ok {
		return spec, nil
	}
	spec, err := prefabs.LoadEntityBuildSpec(key)
	if err != nil {
		return prefabs.EntityBuildSpec{}, err
	}
	if b.cache == nil {
		b.cache = make(map[string]prefabs.EntityBuildSpec)
	}
	b.cache[key] = spec
	return spec, nil
}

// Build creates an entity from the named template. On failure nothing is left
// behind in the world.
func (b *Builder) Build(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := b.spec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1, ScaleZ: 1})
	}

	return e, nil
}

// SetEntityTransform moves e, keeping its scale.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, z, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1, ScaleZ: 1}
	}
	t.X = x
	t.Y = y
	t.Z = z
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addFloorTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.FloorTagComponent.Kind(), &component.FloorTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   defaultScale(spec.ScaleX),
		ScaleY:   defaultScale(spec.ScaleY),
		ScaleZ:   defaultScale(spec.ScaleZ),
		Rotation: spec.Rotation,
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShapeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}
	shape := &component.Shape{Width: spec.Width, Height: spec.Height, Radius: spec.Radius, Depth: spec.Depth}
	switch spec.Kind {
	case "", "box":
		shape.Kind = component.ShapeBox
		if shape.Width <= 0 {
			shape.Width = 1
		}
		if shape.Height <= 0 {
			shape.Height = 1
		}
	case "circle":
		shape.Kind = component.ShapeCircle
		if shape.Radius <= 0 {
			shape.Radius = 0.5
		}
	default:
		return fmt.Errorf("unknown shape kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), shape)
}

func addTint(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TintComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tint spec: %w", err)
	}
	var c color.Color = color.White
	if spec.Color != nil && spec.Color.Color != nil {
		c = spec.Color.Color
	}
	return ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Color: c})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	body := &component.PhysicsBody{
		Width:              spec.Width,
		Height:             spec.Height,
		Radius:             spec.Radius,
		Mass:               spec.Mass,
		Friction:           spec.Friction,
		Elasticity:         spec.Elasticity,
		Static:             spec.Static,
		ScaleWithTransform: spec.ScaleWithTransform,
	}
	FitBodyToShape(w, e, body)
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}

// FitBodyToShape sizes a body that left its extents unset from the entity's
// shape, so a bare physics_body entry collides like it renders.
func FitBodyToShape(w *ecs.World, e ecs.Entity, body *component.PhysicsBody) {
	if body == nil || body.Radius > 0 || (body.Width > 0 && body.Height > 0) {
		return
	}
	shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
	if !ok {
		body.Width, body.Height = 1, 1
		return
	}
	switch shape.Kind {
	case component.ShapeCircle:
		body.Radius = shape.Radius
	default:
		body.Width, body.Height = shape.Width, shape.Height
	}
}

func defaultScale(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
