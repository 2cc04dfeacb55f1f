package component

// SpawnedTag marks instances created by the spawner.
type SpawnedTag struct {
	Template string
}

var SpawnedTagComponent = NewComponent[SpawnedTag]()

type FloorTag struct{}

var FloorTagComponent = NewComponent[FloorTag]()
