package ground

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

const DefaultFloorHeight = 10

var (
	ErrInvalidSize     = errors.New("ground: width and height must be positive")
	ErrIndexOutOfRange = errors.New("ground: cell index out of range")
	ErrBufferSize      = errors.New("ground: pixel buffer size mismatch")
)

// Grid is the paintable terrain: a width*height occupancy map with a color
// per solid cell, mirrored byte-for-byte into an RGBA8 pixel buffer.
//
// Row 0 is the bottom row and cell i occupies pix[4*i:4*i+4], so the buffer
// is stored bottom-up. Empty cells are opaque black.
type Grid struct {
	Width  int
	Height int

	floorHeight int
	floor       Color

	mu      sync.RWMutex
	solid   []bool
	colors  []Color
	pix     []byte
	version uint64
}

// New allocates a grid with the bottom floorHeight rows solid in the floor
// color. floorHeight is clamped to [0, height].
func New(width, height, floorHeight int, floor Color) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	floorHeight = max(0, min(floorHeight, height))

	n := width * height
	g := &Grid{
		Width:       width,
		Height:      height,
		floorHeight: floorHeight,
		floor:       floor,
		solid:       make([]bool, n),
		colors:      make([]Color, n),
		pix:         make([]byte, n*4),
	}
	g.Reset()
	return g, nil
}

// Reset restores the initial floor, one cell at a time.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	floorCells := g.floorHeight * g.Width
	for i := range g.solid {
		if i < floorCells {
			g.setLocked(i, g.floor)
		} else {
			g.clearLocked(i)
		}
	}
}

// FloorHeight is the number of rows preset solid at creation.
func (g *Grid) FloorHeight() int {
	return g.floorHeight
}

// Len is the number of cells.
func (g *Grid) Len() int {
	return g.Width * g.Height
}

// IndexOf maps grid-local coordinates to a cell index. It reports false when
// the point lies outside the grid or either coordinate is not finite.
func (g *Grid) IndexOf(x, y float64) (int, bool) {
	if g == nil || math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 {
		return 0, false
	}
	fx := math.Floor(x)
	fy := math.Floor(y)
	if fx >= float64(g.Width) || fy >= float64(g.Height) {
		return 0, false
	}
	return int(fy)*g.Width + int(fx), true
}

// Cell returns the column and row of index i.
func (g *Grid) Cell(i int) (x, y int) {
	return i % g.Width, i / g.Width
}

func (g *Grid) inRange(i int) bool {
	return g != nil && i >= 0 && i < len(g.solid)
}

// IsSolid reports whether cell i is ground. Out-of-range indices are empty.
func (g *Grid) IsSolid(i int) bool {
	if !g.inRange(i) {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.solid[i]
}

// ColorAt returns the color of a solid cell.
func (g *Grid) ColorAt(i int) (Color, bool) {
	if !g.inRange(i) {
		return Color{}, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.solid[i] {
		return Color{}, false
	}
	return g.colors[i], true
}

// Paint makes cell i solid with color c and mirrors it into the pixel
// buffer. Painting a solid cell overwrites its color.
func (g *Grid) Paint(i int, c Color) error {
	if !g.inRange(i) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.solid[i] && g.colors[i] == c {
		return nil
	}
	g.setLocked(i, c)
	return nil
}

func (g *Grid) setLocked(i int, c Color) {
	g.solid[i] = true
	g.colors[i] = c
	p := g.pix[i*4 : i*4+4 : i*4+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = 0xff
	g.version++
}

func (g *Grid) clearLocked(i int) {
	g.solid[i] = false
	g.colors[i] = Color{}
	p := g.pix[i*4 : i*4+4 : i*4+4]
	p[0] = 0
	p[1] = 0
	p[2] = 0
	p[3] = 0xff
	g.version++
}

// Version increases on every mutation so renderers can skip clean uploads.
func (g *Grid) Version() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.version
}

// CopyPixels copies the bottom-up RGBA8 buffer into dst, which must hold
// exactly Width*Height*4 bytes, and returns the version it copied.
func (g *Grid) CopyPixels(dst []byte) (uint64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(dst) != len(g.pix) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(dst), len(g.pix))
	}
	copy(dst, g.pix)
	return g.version, nil
}

// CopyPixelsFlipped copies the buffer top-down, ready for image upload where
// row 0 is the top of the screen.
func (g *Grid) CopyPixelsFlipped(dst []byte) (uint64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(dst) != len(g.pix) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(dst), len(g.pix))
	}
	stride := g.Width * 4
	for row := 0; row < g.Height; row++ {
		src := g.pix[row*stride : (row+1)*stride]
		copy(dst[(g.Height-1-row)*stride:], src)
	}
	return g.version, nil
}

// SolidCount returns the number of solid cells.
func (g *Grid) SolidCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, s := range g.solid {
		if s {
			n++
		}
	}
	return n
}
