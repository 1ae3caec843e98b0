package component

// Tint is the floating-point color a particle is drawn with and later
// quantized into the ground.
type Tint struct {
	R float64
	G float64
	B float64
}

var TintComponent = NewComponent[Tint]()

// Sprite is a solid rectangle centered on the transform.
type Sprite struct {
	Width  float64
	Height float64
}

var SpriteComponent = NewComponent[Sprite]()
