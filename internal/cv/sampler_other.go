//go:build !windows
// +build !windows

package cv

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ScreenSampler grabs a 1x1 region per sample through the screenshot package
type ScreenSampler struct{}

// NewScreenSampler creates the screenshot-backed sampler
func NewScreenSampler() (*ScreenSampler, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("no active display")
	}
	return &ScreenSampler{}, nil
}

func (s *ScreenSampler) Sample(x, y int) (Color, error) {
	img, err := screenshot.CaptureRect(image.Rect(x, y, x+1, y+1))
	if err != nil {
		return Color{}, &SampleError{X: x, Y: y, Err: err}
	}
	if len(img.Pix) < 3 {
		return Color{}, &SampleError{X: x, Y: y, Err: ErrInvalidPixel}
	}
	return Color{R: img.Pix[0], G: img.Pix[1], B: img.Pix[2]}, nil
}

// ScreenCenter returns the midpoint of display 0
func ScreenCenter() (image.Point, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Point{}, fmt.Errorf("no active display")
	}
	b := screenshot.GetDisplayBounds(0)
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return image.Point{}, fmt.Errorf("invalid screen dimensions: %dx%d", b.Dx(), b.Dy())
	}
	return image.Point{X: b.Min.X + b.Dx()/2, Y: b.Min.Y + b.Dy()/2}, nil
}
