package component

// Particle tags confetti. Seq is the global spawn order and decides which
// particle wins when several paint the same ground cell in one tick.
type Particle struct {
	Seq uint64
}

var ParticleComponent = NewComponent[Particle]()
