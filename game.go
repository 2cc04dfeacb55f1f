package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/cubespawner/config"
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
	"github.com/milk9111/cubespawner/ecs/entity"
	"github.com/milk9111/cubespawner/ecs/system"
	"github.com/milk9111/cubespawner/prefabs"
	"github.com/milk9111/cubespawner/spawn"
)

const floorPrefab = "floor.yaml"

// floorLine is how far down the screen the world origin sits.
const floorLine = 0.7

var background = color.NRGBA{R: 0x18, G: 0x18, B: 0x1b, A: 0xff}

type Game struct {
	world      *ecs.World
	scheduler  *ecs.Scheduler
	builder    *entity.Builder
	controller *spawn.Controller
	physics    *system.PhysicsSystem
	render     *system.RenderSystem
	watcher    *prefabs.Watcher
	log        logrus.FieldLogger

	controls ecs.Entity
	width    int
	height   int
	started  bool
}

func NewGame(app config.App, log *logrus.Logger) (*Game, error) {
	world := ecs.NewWorld()
	builder := entity.NewBuilder()

	if _, err := builder.Build(world, floorPrefab); err != nil {
		return nil, fmt.Errorf("build floor: %w", err)
	}

	input, err := system.NewInputSystem(app.Spawner.ResetKey)
	if err != nil {
		return nil, err
	}

	controls := ecs.CreateEntity(world)
	if err := ecs.Add(world, controls, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return nil, err
	}
	if err := ecs.Add(world, controls, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       1,
		TargetZoom: 1,
		MinZoom:    0.25,
		MaxZoom:    4,
		Smoothness: 0.2,
	}); err != nil {
		return nil, err
	}
	if err := ecs.Add(world, controls, component.DebugViewComponent.Kind(), &component.DebugView{
		ShowArea:    app.Debug,
		ShowPhysics: app.Debug,
	}); err != nil {
		return nil, err
	}

	host := system.NewWorldHost(world, builder)
	controller := spawn.NewController(app.Spawner, host, system.NewFrameScheduler(world), nil, log)
	physics := system.NewPhysicsSystem()

	g := &Game{
		world:      world,
		builder:    builder,
		controller: controller,
		physics:    physics,
		render:     system.NewRenderSystem(),
		log:        log.WithField("component", "game"),
		controls:   controls,
		width:      app.Width,
		height:     app.Height,
	}
	g.scheduler = ecs.NewScheduler(
		input,
		system.NewCameraSystem(),
		system.NewDebugViewSystem(),
		system.NewSpawnerSystem(controller),
		system.NewDelaySystem(),
		physics,
	)

	if app.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			g.log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.drainPrefabEvents()

	if !g.started {
		g.started = true
		// a failed start leaves the spawner idle; the scene keeps running
		_ = g.controller.Start()
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) drainPrefabEvents() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.builder.Invalidate(name)
			g.log.WithField("prefab", name).Info("prefab reloaded")
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("prefab watcher")
			}
		default:
			return
		}
	}
}

func (g *Game) viewport() system.Viewport {
	return system.Viewport{
		OriginX: float64(g.width) / 2,
		OriginY: float64(g.height) * floorLine,
		Zoom:    system.CameraZoom(g.world),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	view := g.viewport()

	g.render.Draw(g.world, screen, view)

	if dv, ok := ecs.Get(g.world, g.controls, component.DebugViewComponent.Kind()); ok {
		if dv.ShowArea {
			g.controller.DebugDrawArea(system.NewAreaGizmo(screen, view))
		}
		if dv.ShowPhysics {
			system.DrawPhysicsDebug(g.physics.Space(), screen, view)
		}
	}

	system.DrawHUD(screen, system.HUDLines(g.controller, g.physics.BodyCount()))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
