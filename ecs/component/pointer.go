package component

// Pointer is the last sampled cursor state in world space.
type Pointer struct {
	X       float64
	Y       float64
	Pressed bool
}
