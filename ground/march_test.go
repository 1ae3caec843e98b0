package ground

import (
	"math"
	"testing"
)

func TestSurfaceAbove(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		vx, vy  float64
		want    MarchResult
		wantX   int
		wantY   int
		prepare func(g *Grid)
	}{
		{
			name: "straight_down_backs_up_to_first_empty_row",
			x:    50, y: 9, vx: 0, vy: -100,
			want: MarchSurface, wantX: 50, wantY: 10,
		},
		{
			name: "deep_hit_walks_whole_floor",
			x:    50.5, y: 0.5, vx: 0, vy: -3,
			want: MarchSurface, wantX: 50, wantY: 10,
		},
		{
			name: "diagonal_follows_true_ray",
			x:    20.5, y: 9.5, vx: 3, vy: -4,
			// one step back: (20.5-0.6, 9.5+0.8) = (19.9, 10.3)
			want: MarchSurface, wantX: 19, wantY: 10,
		},
		{
			name: "shallow_angle_not_snapped",
			x:    40.2, y: 9.9, vx: 10, vy: -1,
			// (40.2-0.995, 9.9+0.0995) = (39.205, 9.9995) still solid,
			// second step reaches y=10.099
			want: MarchSurface, wantX: 38, wantY: 10,
		},
		{
			name: "empty_cell_no_contact",
			x:    50, y: 50, vx: 0, vy: -10,
			want: MarchNoContact,
		},
		{
			name: "outside_grid_no_contact",
			x:    -5, y: 50, vx: 0, vy: -10,
			want: MarchNoContact,
		},
		{
			name: "zero_velocity_stationary",
			x:    50, y: 5, vx: 0, vy: 0,
			want: MarchStationary,
		},
		{
			name: "nan_velocity_stationary",
			x:    50, y: 5, vx: math.NaN(), vy: 1,
			want: MarchStationary,
		},
		{
			name: "moving_up_backs_out_the_bottom",
			x:    50, y: 5, vx: 0, vy: 10,
			want: MarchLeftGrid,
		},
		{
			name: "solid_column_to_the_top_leaves_grid",
			x:    10, y: 5, vx: 0, vy: -10,
			want: MarchLeftGrid,
			prepare: func(g *Grid) {
				for y := 0; y < g.Height; y++ {
					_ = g.Paint(y*g.Width+10, White)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGrid(t, 100, 100)
			if tc.prepare != nil {
				tc.prepare(g)
			}
			before := g.SolidCount()

			idx, got := g.SurfaceAbove(tc.x, tc.y, tc.vx, tc.vy)
			if got != tc.want {
				t.Fatalf("result=%v, want %v", got, tc.want)
			}
			if got.Contact() != (tc.want != MarchNoContact) {
				t.Fatalf("Contact()=%v for %v", got.Contact(), got)
			}
			if tc.want == MarchSurface {
				x, y := g.Cell(idx)
				if x != tc.wantX || y != tc.wantY {
					t.Fatalf("surface=(%d,%d), want (%d,%d)", x, y, tc.wantX, tc.wantY)
				}
				if g.IsSolid(idx) {
					t.Fatalf("surface cell must be empty")
				}
			}
			if g.SolidCount() != before {
				t.Fatalf("SurfaceAbove must not mutate the grid")
			}
		})
	}
}

// Every cell SurfaceAbove returns is on the backward ray from the start point
// and every cell crossed before it is solid.
func TestSurfaceAboveStaysOnRay(t *testing.T) {
	g := newTestGrid(t, 64, 64)
	for x := 0; x < 64; x += 3 {
		for y := 10; y < 10+x%7; y++ {
			_ = g.Paint(y*64+x, Color{R: uint8(x)})
		}
	}

	for angle := 0.05; angle < math.Pi; angle += 0.1 {
		vx := math.Cos(angle+math.Pi) * 250
		vy := math.Sin(angle+math.Pi) * 250
		sx, sy := 32.3, 5.7

		idx, res := g.SurfaceAbove(sx, sy, vx, vy)
		if res != MarchSurface && res != MarchLeftGrid {
			t.Fatalf("angle %.2f: unexpected %v", angle, res)
		}
		if res != MarchSurface {
			continue
		}

		l := math.Hypot(vx, vy)
		dx, dy := vx/l, vy/l
		x, y := sx, sy
		reached := false
		for step := 0; step < 200; step++ {
			x -= dx
			y -= dy
			i, ok := g.IndexOf(x, y)
			if !ok {
				break
			}
			if i == idx {
				reached = true
				break
			}
			if !g.IsSolid(i) {
				t.Fatalf("angle %.2f: skipped empty cell %d before %d", angle, i, idx)
			}
		}
		if !reached {
			t.Fatalf("angle %.2f: cell %d not on backward ray", angle, idx)
		}
	}
}

func TestFirstSolid(t *testing.T) {
	g := newTestGrid(t, 100, 100)
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		wantHit        bool
		wantY          [2]float64 // hit row range [lo, hi)
	}{
		{"skips_whole_floor", 50, 14, 50, -5, true, [2]float64{9, 10}},
		{"diagonal_through_floor", 40, 12, 70, -20, true, [2]float64{9, 10}},
		{"ends_inside_floor", 50, 11.5, 50, 4, true, [2]float64{9, 10}},
		{"air_only", 10, 80, 90, 20, false, [2]float64{}},
		{"stationary_in_floor", 50, 3, 50, 3, true, [2]float64{3, 4}},
		{"stationary_in_air", 50, 30, 50, 30, false, [2]float64{}},
		{"below_grid", 50, -3, 50, -30, false, [2]float64{}},
		{"nan_tests_end", math.NaN(), 50, 50, 2, true, [2]float64{2, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, hit := g.FirstSolid(tc.x0, tc.y0, tc.x1, tc.y1)
			if hit != tc.wantHit {
				t.Fatalf("hit=%v, want %v (at %.2f, %.2f)", hit, tc.wantHit, x, y)
			}
			if !hit {
				if x != tc.x1 || y != tc.y1 {
					t.Fatalf("miss should return the end point, got (%v, %v)", x, y)
				}
				return
			}
			if y < tc.wantY[0] || y >= tc.wantY[1] {
				t.Fatalf("hit at y=%.2f, want in [%v, %v)", y, tc.wantY[0], tc.wantY[1])
			}
			if idx, ok := g.IndexOf(x, y); !ok || !g.IsSolid(idx) {
				t.Fatalf("hit point (%.2f, %.2f) is not solid", x, y)
			}
		})
	}
}

// A segment that crosses the floor at any speed must report the crossing.
func TestFirstSolidNeverSkipsFloor(t *testing.T) {
	g := newTestGrid(t, 200, 200)
	for speed := 1.0; speed < 400; speed *= 1.7 {
		for angle := -0.9; angle <= 0.9; angle += 0.15 {
			dx := math.Sin(angle) * speed
			dy := -math.Cos(angle) * speed
			// start just above the floor, end below it
			x0, y0 := 100.0, 10.2
			x1, y1 := x0+dx, y0+dy
			if y1 >= 0 {
				continue
			}
			if _, _, hit := g.FirstSolid(x0, y0, x1, y1); !hit {
				t.Fatalf("speed %.1f angle %.2f: crossing not detected", speed, angle)
			}
		}
	}
}
