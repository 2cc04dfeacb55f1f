package system

import (
	"math"

	"github.com/milk9111/cubespawner/common"
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
)

const zoomStep = 0.1

type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update feeds wheel movement into the camera's target zoom and eases toward it.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		if input.ZoomDelta != 0 {
			cam.TargetZoom *= math.Pow(1+zoomStep, input.ZoomDelta)
		}
	})

	if cam.TargetZoom <= 0 {
		cam.TargetZoom = 1
	}
	if cam.MinZoom > 0 {
		cam.TargetZoom = math.Max(cam.TargetZoom, cam.MinZoom)
	}
	if cam.MaxZoom > 0 {
		cam.TargetZoom = math.Min(cam.TargetZoom, cam.MaxZoom)
	}

	t := cam.Smoothness
	if t <= 0 || t > 1 {
		t = 1
	}
	cam.Zoom = float64(common.Lerp(float32(cam.Zoom), float32(cam.TargetZoom), float32(t)))
}

// CameraZoom returns the zoom of the first camera, or 1 without one.
func CameraZoom(w *ecs.World) float64 {
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 1
	}
	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	if cam.Zoom <= 0 {
		return 1
	}
	return cam.Zoom
}
