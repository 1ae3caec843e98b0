package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand/v2"
	"os"

	"github.com/milk9111/confetti/config"
	"github.com/milk9111/confetti/ground"
	"github.com/milk9111/confetti/sim"
)

// sweepPointer drags the cursor back and forth across the upper half of the
// viewport, clicking once every `every` ticks.
type sweepPointer struct {
	width, height float64
	every         int
	period        int
	tick          int
}

func (p *sweepPointer) Pointer() (float64, float64, bool) {
	t := p.tick
	p.tick++

	phase := float64(t%p.period) / float64(p.period)
	if phase > 0.5 {
		phase = 1 - phase
	}
	x := (phase*2 - 0.5) * p.width * 0.8
	y := p.height / 4
	return x, y, p.every > 0 && t%p.every == 0
}

func main() {
	configPath := flag.String("config", "", "yaml file layered over the built-in confetti.yaml")
	ticks := flag.Int("ticks", 1200, "ticks to simulate")
	seed := flag.Uint64("seed", 42, "random seed")
	every := flag.Int("every", 6, "click once every N ticks")
	out := flag.String("out", "ground.png", "output PNG path")
	flag.Parse()

	if *ticks <= 0 {
		log.Fatal("snapshot: -ticks must be > 0")
	}

	cfg, err := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	}
	if err != nil {
		log.Fatal(err)
	}

	s, err := run(cfg, *ticks, *seed, *every)
	if err != nil {
		log.Fatal(err)
	}

	img, err := groundImage(s.Ground)
	if err != nil {
		log.Fatal(err)
	}
	if err := writePNG(*out, img); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== Confetti snapshot ===\n")
	fmt.Printf("ticks=%d seed=%d every=%d\n", s.Ticks(), *seed, *every)
	fmt.Println(s.Debug.String())
	fmt.Printf("Solid cells: %d\nwrote %s\n", s.Ground.SolidCount(), *out)
}

func run(cfg config.Config, ticks int, seed uint64, every int) (*sim.Simulation, error) {
	pointer := &sweepPointer{
		width:  float64(cfg.Window.Width),
		height: float64(cfg.Window.Height),
		every:  every,
		period: max(cfg.Window.TPS*4, 1),
	}
	s, err := sim.New(cfg, pointer, rand.New(rand.NewPCG(seed, seed>>1)))
	if err != nil {
		return nil, err
	}
	for i := 0; i < ticks; i++ {
		s.Tick()
	}
	return s, nil
}

// groundImage returns the ground as a top-down image.
func groundImage(g *ground.Grid) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	if _, err := g.CopyPixelsFlipped(img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return f.Close()
}
