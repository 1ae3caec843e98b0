package ground

import "image/color"

// Color is an opaque 8-bit RGB sample stored in the ground.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// Quantize converts floating-point channels in [0,1] to 8 bits by scaling
// with 255 and truncating. Out-of-range channels are clamped.
func Quantize(r, g, b float64) Color {
	return Color{R: quantizeChannel(r), G: quantizeChannel(g), B: quantizeChannel(b)}
}

func quantizeChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// FromColor drops alpha from any image color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// RGBA implements color.Color; ground pixels are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}
