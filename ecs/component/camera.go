package component

// Camera scales the view. Zoom eases toward TargetZoom at Smoothness per tick.
type Camera struct {
	Zoom       float64
	TargetZoom float64
	MinZoom    float64
	MaxZoom    float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
