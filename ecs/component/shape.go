package component

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Shape is the renderable geometry of a template, in world units before scale.
type Shape struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
	// Depth is the box extent along Z; zero means as deep as it is wide.
	Depth float64
}

var ShapeComponent = NewComponent[Shape]()
