package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DefaultWindowSize fits the trigger form and the indicator without scrolling
var DefaultWindowSize = fyne.NewSize(480, 760)

// Panel palette. Armed green doubles as the success color, so the status
// line and fired clicks in the activity list share it.
var (
	ColorArmed      = color.NRGBA{R: 0, G: 200, B: 83, A: 255}
	ColorInactive   = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	ColorCrosshair  = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	ColorWarning    = color.NRGBA{R: 255, G: 171, B: 0, A: 255}
	ColorError      = color.NRGBA{R: 255, G: 82, B: 82, A: 255}
	ColorBackground = color.NRGBA{R: 14, G: 16, B: 18, A: 255}
	ColorInputBg    = color.NRGBA{R: 28, G: 31, B: 35, A: 255}
)

var panelColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNamePrimary:         ColorArmed,
	theme.ColorNameSuccess:         ColorArmed,
	theme.ColorNameFocus:           color.NRGBA{R: 0, G: 200, B: 83, A: 90},
	theme.ColorNameSelection:       color.NRGBA{R: 0, G: 200, B: 83, A: 60},
	theme.ColorNameWarning:         ColorWarning,
	theme.ColorNameError:           ColorError,
	theme.ColorNameBackground:      ColorBackground,
	theme.ColorNameInputBackground: ColorInputBg,
	theme.ColorNameDisabled:        ColorInactive,
}

// PanelTheme is a compact, always dark theme. The panel sits next to a game
// window, so it ignores the system light/dark preference.
type PanelTheme struct{}

func (t *PanelTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := panelColors[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (t *PanelTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PanelTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PanelTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 2
	default:
		return theme.DefaultTheme().Size(name)
	}
}

// statusImportance colors the status line with the armed accent while detecting
func statusImportance(detecting bool) widget.Importance {
	if detecting {
		return widget.SuccessImportance
	}
	return widget.MediumImportance
}
