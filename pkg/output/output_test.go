package output

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestToRGB8(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected [3]uint8
	}{
		{"black", core.NewVec3(0, 0, 0), [3]uint8{0, 0, 0}},
		{"white saturates below 256", core.NewVec3(1, 1, 1), [3]uint8{255, 255, 255}},
		{"over-bright clamps", core.NewVec3(4, 100, math32.Inf(1)), [3]uint8{255, 255, 255}},
		{"negative is black", core.NewVec3(-0.5, -1, -100), [3]uint8{0, 0, 0}},
		{"NaN is black", core.NewVec3(math32.NaN(), 0, 0), [3]uint8{0, 0, 0}},
		{"gamma 2", core.NewVec3(0.25, 0.0625, 0.01), [3]uint8{128, 64, 25}},
		{"horizon sky", core.NewVec3(0.75, 0.85, 1.0), [3]uint8{221, 236, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ToRGB8(tt.color)
			assert.Equal(t, tt.expected, [3]uint8{r, g, b})
		})
	}
}

func TestWritePPM(t *testing.T) {
	img := renderer.NewImage(2, 1)
	img.Set(1, 0, core.NewVec3(0.75, 0.85, 1.0))

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, img))

	expected := "P3\n2 1\n255\n0 0 0\n221 236 255\n"
	assert.Equal(t, expected, buf.String())
}

func TestWritePPM_RowMajorTopFirst(t *testing.T) {
	img := renderer.NewImage(1, 3)
	img.Set(0, 0, core.NewVec3(1, 0, 0))
	img.Set(0, 2, core.NewVec3(0, 0, 1))

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, img))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3+3)
	assert.Equal(t, "1 3", lines[1])
	assert.Equal(t, "255 0 0", lines[3])
	assert.Equal(t, "0 0 0", lines[4])
	assert.Equal(t, "0 0 255", lines[5])
}

func TestWritePNG_MatchesPPMValues(t *testing.T) {
	img := renderer.NewImage(3, 2)
	img.Set(0, 0, core.NewVec3(0.25, 0.5, 0.75))
	img.Set(2, 1, core.NewVec3(0.75, 0.85, 1.0))

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, decoded.Bounds().Dx())
	require.Equal(t, 2, decoded.Bounds().Dy())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r, g, b, a := decoded.At(x, y).RGBA()
			er, eg, eb := ToRGB8(img.At(x, y))
			assert.Equal(t, [4]uint32{uint32(er), uint32(eg), uint32(eb), 255}, [4]uint32{r >> 8, g >> 8, b >> 8, a >> 8}, "pixel %d,%d", x, y)
		}
	}
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = FormatFromPath("out/image.ppm")
	require.NoError(t, err)
	assert.Equal(t, FormatPPM, f)

	_, err = FormatFromPath("image.jpg")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	err = Write(&bytes.Buffer{}, renderer.NewImage(1, 1), Format("gif"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, renderer.NewImage(1, 1), FormatPPM))
	assert.True(t, strings.HasPrefix(buf.String(), "P3\n"))
}
