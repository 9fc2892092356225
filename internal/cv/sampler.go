package cv

import (
	"errors"
	"fmt"
	"image"
)

// PixelSampler reads the color currently displayed at an absolute screen coordinate
type PixelSampler interface {
	Sample(x, y int) (Color, error)
}

// ErrInvalidPixel is returned when the capture API reports no color for a coordinate
// (typically because it is off-screen).
var ErrInvalidPixel = errors.New("pixel unavailable")

// SampleError describes a single failed pixel read.
// Callers treat it as a non-match for that pixel and move on.
type SampleError struct {
	X, Y int
	Err  error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample (%d,%d): %v", e.X, e.Y, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

// SamplerFunc adapts a function to PixelSampler
type SamplerFunc func(x, y int) (Color, error)

func (f SamplerFunc) Sample(x, y int) (Color, error) {
	return f(x, y)
}

// ImageSampler samples from a fixed frame. Coordinates outside the frame fail.
// Useful for replaying captured frames and for tests.
type ImageSampler struct {
	Frame  image.Image
	Origin image.Point // screen position of the frame's top-left pixel
}

func (s *ImageSampler) Sample(x, y int) (Color, error) {
	p := image.Point{X: x, Y: y}.Sub(s.Origin).Add(s.Frame.Bounds().Min)
	if !p.In(s.Frame.Bounds()) {
		return Color{}, &SampleError{X: x, Y: y, Err: ErrInvalidPixel}
	}
	return FromColor(s.Frame.At(p.X, p.Y)), nil
}
