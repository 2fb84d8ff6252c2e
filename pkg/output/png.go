package output

import (
	"image/png"
	"io"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// WritePNG encodes the image as an 8-bit PNG using the same color conversion as WritePPM
func WritePNG(w io.Writer, img *renderer.Image) error {
	return png.Encode(w, ToRGBA(img))
}
