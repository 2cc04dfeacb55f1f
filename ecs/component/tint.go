package component

import "image/color"

// Tint is the material color a shape is filled with.
type Tint struct {
	Color color.Color
}

var TintComponent = NewComponent[Tint]()
