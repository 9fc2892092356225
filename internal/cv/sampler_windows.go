//go:build windows
// +build windows

package cv

import (
	"fmt"
	"image"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	gdi32                = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
	procGetPixel         = gdi32.NewProc("GetPixel")
)

const (
	SM_CXSCREEN = 0
	SM_CYSCREEN = 1
	CLR_INVALID = 0xFFFFFFFF
)

// ScreenSampler reads pixels from the desktop DC with GDI GetPixel
type ScreenSampler struct{}

// NewScreenSampler creates the GDI-backed sampler
func NewScreenSampler() (*ScreenSampler, error) {
	if err := procGetPixel.Find(); err != nil {
		return nil, fmt.Errorf("GetPixel unavailable: %w", err)
	}
	return &ScreenSampler{}, nil
}

// Sample reads one pixel. The screen DC is acquired and released per call.
func (s *ScreenSampler) Sample(x, y int) (Color, error) {
	hdc, _, err := procGetDC.Call(0)
	if hdc == 0 {
		return Color{}, &SampleError{X: x, Y: y, Err: fmt.Errorf("GetDC failed: %v", err)}
	}
	defer procReleaseDC.Call(0, hdc)

	ref, _, _ := procGetPixel.Call(hdc, uintptr(int32(x)), uintptr(int32(y)))
	if uint32(ref) == CLR_INVALID {
		return Color{}, &SampleError{X: x, Y: y, Err: ErrInvalidPixel}
	}

	return fromCOLORREF(uint32(ref)), nil
}

// ScreenCenter returns the midpoint of the primary screen
func ScreenCenter() (image.Point, error) {
	w, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	h, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	if int32(w) <= 0 || int32(h) <= 0 {
		return image.Point{}, fmt.Errorf("invalid screen dimensions: %dx%d", int32(w), int32(h))
	}
	return image.Point{X: int(int32(w)) / 2, Y: int(int32(h)) / 2}, nil
}
