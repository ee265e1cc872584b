package anime

import (
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/asus2go/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halfImage returns a grid sized image whose left half is white
func halfImage(geometry platform.AnimeGeometry) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, geometry.Width, geometry.Height))
	for y := 0; y < geometry.Height; y++ {
		for x := 0; x < geometry.Width/2; x++ {
			img.Pix[y*img.Stride+x] = 255
		}
	}
	return img
}

func TestPlaceImage_Identity(t *testing.T) {
	// GIVEN
	geometry := platform.AnimeTypeGA401.Geometry()
	img := halfImage(geometry)

	// WHEN
	result := placeImage(img, geometry, Placement{Scale: 1})

	// THEN
	require.Len(t, result, geometry.Width*geometry.Height)
	row := geometry.Height / 2
	assert.InDelta(t, 255, int(result[row*geometry.Width+4]), 1)
	assert.InDelta(t, 0, int(result[row*geometry.Width+geometry.Width-4]), 1)
}

func TestPlaceImage_Rotated(t *testing.T) {
	// GIVEN
	geometry := platform.AnimeTypeGA401.Geometry()
	img := halfImage(geometry)

	// WHEN
	result := placeImage(img, geometry, Placement{Scale: 1, Angle: math.Pi})

	// THEN
	row := geometry.Height / 2
	assert.InDelta(t, 0, int(result[row*geometry.Width+4]), 1)
	assert.InDelta(t, 255, int(result[row*geometry.Width+geometry.Width-4]), 1)
}

func TestPlaceImage_Translation(t *testing.T) {
	// GIVEN
	geometry := platform.AnimeTypeGA401.Geometry()
	img := solidImage(4, 4, 255)

	// WHEN
	centered := placeImage(img, geometry, Placement{Scale: 1})
	moved := placeImage(img, geometry, Placement{Scale: 1, Translation: Vec2{X: -10}})

	// THEN
	assert.InDelta(t, 255, int(centered[centerLed()]), 1)
	assert.InDelta(t, 0, int(moved[centerLed()]), 1)
	assert.InDelta(t, 255, int(moved[centerLed()-10]), 1)
}

func TestPlacementTransform_Fit(t *testing.T) {
	// GIVEN
	geometry := platform.AnimeTypeGA401.Geometry()
	src := image.Rect(0, 0, 330, 100)

	// WHEN
	transform := placementTransform(src, geometry, Placement{Scale: 1, Fit: true})

	// THEN
	assert.InDelta(t, 0.1, transform[0], 1e-9)
	assert.InDelta(t, 0.1, transform[4], 1e-9)
	// source center lands on the grid center
	assert.InDelta(t, float64(geometry.Width)/2, transform[0]*165+transform[2], 1e-9)
	assert.InDelta(t, float64(geometry.Height)/2, transform[4]*50+transform[5], 1e-9)
}

func TestDecodeAnimation(t *testing.T) {
	// GIVEN
	path := writeGIF(t, 0, 40, 80, 120)

	// WHEN
	frames, delays, err := decodeAnimation(path)

	// THEN
	require.NoError(t, err)
	assert.Len(t, frames, 3)
	assert.Equal(t, []time.Duration{defaultFrameDelay, defaultFrameDelay, defaultFrameDelay}, delays)
}

func TestDecodeImage_Invalid(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	// WHEN
	_, err := decodeImage(path)

	// THEN
	assert.Error(t, err)
}
