package ground

import "math"

// MarchResult classifies what SurfaceAbove found.
type MarchResult int

const (
	// MarchNoContact: the point is outside the grid or in an empty cell.
	MarchNoContact MarchResult = iota
	// MarchStationary: the point is embedded but the velocity has no
	// direction to back out along.
	MarchStationary
	// MarchLeftGrid: backing out crossed the grid edge before reaching an
	// empty cell.
	MarchLeftGrid
	// MarchSurface: an empty cell adjacent to the solid run was found.
	MarchSurface
)

func (r MarchResult) String() string {
	switch r {
	case MarchNoContact:
		return "no-contact"
	case MarchStationary:
		return "stationary"
	case MarchLeftGrid:
		return "left-grid"
	case MarchSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// Contact reports whether the point was embedded in solid ground.
func (r MarchResult) Contact() bool {
	return r != MarchNoContact
}

// SurfaceAbove finds the cell an embedded particle sticks to. Starting from
// grid-local (x, y) it steps by the negated unit velocity, one cell length
// at a time, until it lands on an empty cell (MarchSurface, idx is that
// cell) or leaves the grid (MarchLeftGrid).
func (g *Grid) SurfaceAbove(x, y, vx, vy float64) (int, MarchResult) {
	idx, ok := g.IndexOf(x, y)
	if !ok {
		return 0, MarchNoContact
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.solid[idx] {
		return 0, MarchNoContact
	}

	length := math.Hypot(vx, vy)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return 0, MarchStationary
	}
	dx := vx / length
	dy := vy / length

	// Each step moves one unit, so the walk leaves the grid within
	// Width+Height steps.
	limit := g.Width + g.Height + 2
	for step := 0; step < limit; step++ {
		x -= dx
		y -= dy
		idx, ok = g.IndexOf(x, y)
		if !ok {
			return 0, MarchLeftGrid
		}
		if !g.solid[idx] {
			return idx, MarchSurface
		}
	}
	return 0, MarchLeftGrid
}

// FirstSolid walks the segment from (x0, y0) to (x1, y1) in half-cell steps,
// excluding the start, and returns the first sampled point that lies in
// solid ground. A zero-length segment tests only the end point.
func (g *Grid) FirstSolid(x0, y0, x1, y1 float64) (float64, float64, bool) {
	dist := math.Hypot(x1-x0, y1-y0)
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return x1, y1, g.solidAt(x1, y1)
	}

	// half-cell steps cannot jump across a run of two or more cells
	steps := int(math.Ceil(dist * 2))
	steps = min(max(steps, 1), 4*(g.Width+g.Height))
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		if g.solidAt(x, y) {
			return x, y, true
		}
	}
	return x1, y1, false
}

func (g *Grid) solidAt(x, y float64) bool {
	idx, ok := g.IndexOf(x, y)
	if !ok {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.solid[idx]
}
