package component

// Delay fires Fire once Frames update ticks have elapsed, then the owning
// entity is destroyed. Destroying the entity early cancels it.
type Delay struct {
	Frames int
	Fire   func()
}

var DelayComponent = NewComponent[Delay]()
