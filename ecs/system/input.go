package system

import (
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
)

// PointerSource samples the cursor in world coordinates.
type PointerSource interface {
	Pointer() (x, y float64, pressed bool)
}

// InputSystem copies the sampled cursor into the shared pointer state.
type InputSystem struct {
	source  PointerSource
	pointer *component.Pointer
	debug   *component.DebugInfo
}

func NewInputSystem(source PointerSource, pointer *component.Pointer, debug *component.DebugInfo) *InputSystem {
	return &InputSystem{source: source, pointer: pointer, debug: debug}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || i.pointer == nil {
		return
	}

	x, y, pressed := i.source.Pointer()
	i.pointer.X = x
	i.pointer.Y = y
	i.pointer.Pressed = pressed

	if i.debug != nil {
		i.debug.MouseX = x
		i.debug.MouseY = y
	}
}
