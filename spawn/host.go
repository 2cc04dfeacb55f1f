package spawn

import (
	"image/color"
	"time"
)

// Handle is an opaque reference to a spawned instance.
type Handle uint64

// Vec3 is a point or per-axis scale in world units.
type Vec3 struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

// SceneHost creates and tears down instances of templates.
type SceneHost interface {
	// Instantiate creates template at pos with identity orientation.
	Instantiate(template string, pos Vec3) (Handle, error)
	Destroy(h Handle)
	Alive(h Handle) bool
	SetColor(h Handle, c color.Color)
	SetScale(h Handle, scale Vec3)
	HasPhysicsBody(h Handle) bool
	AddPhysicsBody(h Handle) error
}

// Scheduler runs fn once after delay has elapsed on the host's tick. Callbacks
// run on the same goroutine as every other controller call.
type Scheduler interface {
	After(delay time.Duration, fn func()) Timer
}

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// AreaDrawer receives the spawn-area outline. Points are in world units.
type AreaDrawer interface {
	DrawLine(from, to Vec3, c color.Color)
}
