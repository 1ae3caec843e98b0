package system

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/confetti/ecs/component"
)

var ErrPaletteResult = errors.New("palette: script must set color to [r, g, b]")

// Palette picks the shared color of a spawn batch.
type Palette interface {
	Pick(rng *rand.Rand) component.Tint
}

// RandomPalette draws each channel uniformly from [0,1).
type RandomPalette struct{}

func (RandomPalette) Pick(rng *rand.Rand) component.Tint {
	return component.Tint{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
}

// ScriptPalette runs a tengo script per batch. The script sees three uniform
// samples u1, u2, u3 and must assign `color` an array of three numbers in
// [0,1]. Draws come from the simulation RNG, so seeded runs stay
// reproducible.
type ScriptPalette struct {
	name     string
	compiled *tengo.Compiled
}

func NewScriptPalette(name string, src []byte) (*ScriptPalette, error) {
	script := tengo.NewScript(src)
	for _, v := range []string{"u1", "u2", "u3"} {
		if err := script.Add(v, 0.0); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("palette: compile %s: %w", name, err)
	}
	// globals only hold values after a run
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("palette: run %s: %w", name, err)
	}
	if !compiled.IsDefined("color") {
		return nil, fmt.Errorf("palette: %s: %w", name, ErrPaletteResult)
	}
	return &ScriptPalette{name: name, compiled: compiled}, nil
}

// Eval runs the script with fixed samples.
func (p *ScriptPalette) Eval(u1, u2, u3 float64) (component.Tint, error) {
	for name, v := range map[string]float64{"u1": u1, "u2": u2, "u3": u3} {
		if err := p.compiled.Set(name, v); err != nil {
			return component.Tint{}, err
		}
	}
	if err := p.compiled.Run(); err != nil {
		return component.Tint{}, fmt.Errorf("palette: run %s: %w", p.name, err)
	}

	arr := p.compiled.Get("color").Array()
	if len(arr) != 3 {
		return component.Tint{}, fmt.Errorf("palette: %s: %w", p.name, ErrPaletteResult)
	}
	var ch [3]float64
	for i, v := range arr {
		switch n := v.(type) {
		case float64:
			ch[i] = n
		case int64:
			ch[i] = float64(n)
		default:
			return component.Tint{}, fmt.Errorf("palette: %s: channel %d is %T: %w", p.name, i, v, ErrPaletteResult)
		}
	}
	return component.Tint{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Pick falls back to a plain random color if the script fails at runtime.
func (p *ScriptPalette) Pick(rng *rand.Rand) component.Tint {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	tint, err := p.Eval(u1, u2, u3)
	if err != nil {
		log.Printf("Palette: %v", err)
		return component.Tint{R: u1, G: u2, B: u3}
	}
	return tint
}
