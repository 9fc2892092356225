package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"jordanella.com/pixel-trigger-go/internal/config"
)

const (
	indicatorScale = 4 // screen pixels are drawn this many units wide
	crosshairArm   = 8
)

var indicatorSide = float32(2*config.MaxRadius*indicatorScale + 2*crosshairArm)

// Indicator draws the detection disk around a crosshair, in the target color
// while detection is armed and grey while it is not.
type Indicator struct {
	circle     *canvas.Circle
	horizontal *canvas.Line
	vertical   *canvas.Line
	box        *fyne.Container
}

// NewIndicator creates an indicator sized for the largest radius
func NewIndicator() *Indicator {
	ind := &Indicator{
		circle:     canvas.NewCircle(color.Transparent),
		horizontal: canvas.NewLine(ColorCrosshair),
		vertical:   canvas.NewLine(ColorCrosshair),
	}
	ind.circle.StrokeWidth = 2
	ind.horizontal.StrokeWidth = 1
	ind.vertical.StrokeWidth = 1

	frame := canvas.NewRectangle(color.Transparent)
	frame.SetMinSize(fyne.NewSize(indicatorSide, indicatorSide))

	ind.box = container.NewStack(frame, container.NewWithoutLayout(ind.circle, ind.horizontal, ind.vertical))
	return ind
}

// Object is the canvas object to place in a layout
func (ind *Indicator) Object() fyne.CanvasObject {
	return ind.box
}

// circleBounds returns the top-left corner and diameter of the disk for radius
func circleBounds(radius int) (fyne.Position, float32) {
	diameter := float32(2 * radius * indicatorScale)
	mid := indicatorSide / 2
	return fyne.NewPos(mid-diameter/2, mid-diameter/2), diameter
}

// Update redraws the indicator from cfg. Must run on the fyne thread.
func (ind *Indicator) Update(cfg config.Config, detecting bool) {
	if !cfg.ShowIndicator {
		ind.box.Hide()
		return
	}
	ind.box.Show()

	pos, diameter := circleBounds(cfg.Radius)
	ind.circle.Move(pos)
	ind.circle.Resize(fyne.NewSize(diameter, diameter))
	if detecting {
		ind.circle.StrokeColor = cfg.TargetColor.NRGBA()
	} else {
		ind.circle.StrokeColor = ColorInactive
	}

	mid := indicatorSide / 2
	ind.horizontal.Position1 = fyne.NewPos(mid-crosshairArm, mid)
	ind.horizontal.Position2 = fyne.NewPos(mid+crosshairArm, mid)
	ind.vertical.Position1 = fyne.NewPos(mid, mid-crosshairArm)
	ind.vertical.Position2 = fyne.NewPos(mid, mid+crosshairArm)

	ind.circle.Refresh()
	ind.horizontal.Refresh()
	ind.vertical.Refresh()
}
