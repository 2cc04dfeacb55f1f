package component

// Input stores per-frame input state for an entity.
type Input struct {
	ResetPressed       bool
	ToggleGizmoPressed bool
	ToggleDebugPressed bool
	// ZoomDelta is the vertical wheel movement this tick.
	ZoomDelta float64
}

var InputComponent = NewComponent[Input]()
