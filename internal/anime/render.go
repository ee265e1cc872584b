package anime

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"time"

	"github.com/markusressel/asus2go/internal/platform"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
)

// defaultFrameDelay is used for gif frames without a delay
const defaultFrameDelay = 100 * time.Millisecond

// Placement describes how a source image is mapped onto the led grid
type Placement struct {
	Scale       float64
	Angle       float64
	Translation Vec2
	// Fit scales the image to fit the grid before Scale is applied
	Fit bool
}

// placementTransform computes the source to grid transformation.
// The image center is mapped onto the grid center, then rotated, scaled and translated.
func placementTransform(src image.Rectangle, geometry platform.AnimeGeometry, p Placement) f64.Aff3 {
	scale := p.Scale
	if p.Fit && src.Dx() > 0 && src.Dy() > 0 {
		scale *= math.Min(float64(geometry.Width)/float64(src.Dx()), float64(geometry.Height)/float64(src.Dy()))
	}
	cos, sin := math.Cos(p.Angle), math.Sin(p.Angle)

	a, b := scale*cos, -scale*sin
	d, e := scale*sin, scale*cos

	srcCx := float64(src.Min.X) + float64(src.Dx())/2
	srcCy := float64(src.Min.Y) + float64(src.Dy())/2
	dstCx := float64(geometry.Width)/2 + p.Translation.X
	dstCy := float64(geometry.Height)/2 + p.Translation.Y

	return f64.Aff3{
		a, b, dstCx - (a*srcCx + b*srcCy),
		d, e, dstCy - (d*srcCx + e*srcCy),
	}
}

// placeImage renders src onto the led grid and returns the luminance of every led, row by row
func placeImage(src image.Image, geometry platform.AnimeGeometry, p Placement) []byte {
	dst := image.NewGray(image.Rect(0, 0, geometry.Width, geometry.Height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	draw.BiLinear.Transform(dst, placementTransform(src.Bounds(), geometry, p), src, src.Bounds(), draw.Over, nil)

	result := make([]byte, geometry.Width*geometry.Height)
	for y := 0; y < geometry.Height; y++ {
		copy(result[y*geometry.Width:], dst.Pix[y*dst.Stride:y*dst.Stride+geometry.Width])
	}
	return result
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// decodeAnimation decodes all frames of a gif, composing each frame onto the previous ones
func decodeAnimation(path string) ([]image.Image, []time.Duration, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	animation, err := gif.DecodeAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(animation.Image) == 0 {
		return nil, nil, fmt.Errorf("%s has no frames", path)
	}

	bounds := image.Rect(0, 0, animation.Config.Width, animation.Config.Height)
	if bounds.Empty() {
		bounds = animation.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]image.Image, 0, len(animation.Image))
	delays := make([]time.Duration, 0, len(animation.Image))
	for i, frame := range animation.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(animation.Disposal) {
			disposal = animation.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			draw.Draw(previous, bounds, canvas, bounds.Min, draw.Src)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		composed := image.NewRGBA(bounds)
		draw.Draw(composed, bounds, canvas, bounds.Min, draw.Src)
		frames = append(frames, composed)

		delay := defaultFrameDelay
		if i < len(animation.Delay) && animation.Delay[i] > 0 {
			delay = time.Duration(animation.Delay[i]) * 10 * time.Millisecond
		}
		delays = append(delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames, delays, nil
}
