package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
)

// KeyPoller reports whether a key went down this tick.
type KeyPoller func(ebiten.Key) bool

type InputSystem struct {
	resetKey ebiten.Key
	pressed  KeyPoller
	gamepad  func() bool
	wheel    func() (float64, float64)
}

// NewInputSystem resolves the reset key by ebiten name ("R", "Backspace", ...).
func NewInputSystem(resetKey string) (*InputSystem, error) {
	key, err := ParseKey(resetKey)
	if err != nil {
		return nil, err
	}
	return &InputSystem{resetKey: key, pressed: inpututil.IsKeyJustPressed, gamepad: gamepadResetPressed, wheel: ebiten.Wheel}, nil
}

func ParseKey(name string) (ebiten.Key, error) {
	if name == "" {
		return ebiten.KeyR, nil
	}
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("input: unknown key %q: %w", name, err)
	}
	return key, nil
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	reset := i.pressed(i.resetKey)
	gizmo := i.pressed(ebiten.KeyG)
	debug := i.pressed(ebiten.KeyP)

	if i.gamepad != nil && i.gamepad() {
		reset = true
	}
	var zoom float64
	if i.wheel != nil {
		_, zoom = i.wheel()
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.ResetPressed = reset
		input.ToggleGizmoPressed = gizmo
		input.ToggleDebugPressed = debug
		input.ZoomDelta = zoom
	})
}

// gamepadResetPressed maps the first pad's start button to reset.
func gamepadResetPressed() bool {
	gamepads := ebiten.AppendGamepadIDs(nil)
	if len(gamepads) == 0 {
		return false
	}
	return inpututil.IsStandardGamepadButtonJustPressed(gamepads[0], ebiten.StandardGamepadButtonCenterRight)
}
