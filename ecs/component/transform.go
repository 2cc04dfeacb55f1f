package component

// Transform places an entity in world units. X runs right, Y up and Z into the
// scene; the floor sits at Y == 0.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	ScaleZ   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
