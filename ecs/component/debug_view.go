package component

// DebugView holds the overlay switches flipped at runtime.
type DebugView struct {
	ShowArea    bool
	ShowPhysics bool
}

var DebugViewComponent = NewComponent[DebugView]()
