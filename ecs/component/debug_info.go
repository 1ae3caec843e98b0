package component

import (
	"fmt"
	"log"
)

// DebugInfo counts particles through their lifecycle. Live must equal
// Spawned - Absorbed - Reaped; Underflows records removals that would have
// driven it negative.
type DebugInfo struct {
	Live       int
	Spawned    int
	Absorbed   int
	Reaped     int
	Underflows int
	MouseX     float64
	MouseY     float64
}

// RemovalKind says why a particle left the simulation.
type RemovalKind int

const (
	RemovalAbsorbed RemovalKind = iota
	RemovalReaped
)

// Spawn records n new particles.
func (d *DebugInfo) Spawn(n int) {
	if d == nil || n <= 0 {
		return
	}
	d.Live += n
	d.Spawned += n
}

// Remove records one particle removal. A removal with no live particles is an
// invariant violation: Live stays at zero and the underflow is flagged.
func (d *DebugInfo) Remove(kind RemovalKind) {
	if d == nil {
		return
	}
	switch kind {
	case RemovalAbsorbed:
		d.Absorbed++
	case RemovalReaped:
		d.Reaped++
	}
	if d.Live <= 0 {
		d.Live = 0
		d.Underflows++
		log.Printf("DebugInfo: live particle count underflow (%d total)", d.Underflows)
		return
	}
	d.Live--
}

func (d DebugInfo) String() string {
	return fmt.Sprintf("Live: %d\nSpawned: %d\nAbsorbed: %d\nReaped: %d\nUnderflows: %d\nMouse: (%.1f, %.1f)",
		d.Live, d.Spawned, d.Absorbed, d.Reaped, d.Underflows, d.MouseX, d.MouseY)
}
