package output

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// intensity keeps 8-bit conversion below 256
var intensity = core.NewInterval(0.000, 0.999)

// LinearToGamma applies gamma 2 correction. Negative and NaN input map to 0.
func LinearToGamma(linear float32) float32 {
	if linear > 0 {
		return math32.Sqrt(linear)
	}
	return 0
}

// ToRGB8 converts a linear-light color to gamma-corrected 8-bit channels
func ToRGB8(c core.Vec3) (r, g, b uint8) {
	r = toByte(c.X)
	g = toByte(c.Y)
	b = toByte(c.Z)
	return r, g, b
}

func toByte(linear float32) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}

// ToRGBA converts a rendered image to an opaque 8-bit RGBA image
func ToRGBA(img *renderer.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := ToRGB8(img.At(x, y))
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}
