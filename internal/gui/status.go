package gui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"jordanella.com/pixel-trigger-go/internal/trigger"
)

// Status is what the status line shows
type Status struct {
	Detecting bool
	Moving    bool
	Running   bool
	Center    image.Point
	Stats     trigger.Stats
}

func (s Status) String() string {
	parts := make([]string, 0, 5)

	if s.Detecting {
		parts = append(parts, "ACTIVE")
	} else {
		parts = append(parts, "INACTIVE")
	}
	if s.Moving {
		parts = append(parts, "MOVING")
	} else {
		parts = append(parts, "STATIONARY")
	}
	if !s.Running {
		parts = append(parts, "STOPPED")
	}

	parts = append(parts, fmt.Sprintf("clicks %d", s.Stats.Clicks))
	parts = append(parts, fmt.Sprintf("center (%d,%d)", s.Center.X, s.Center.Y))

	line := strings.Join(parts, " | ")
	if !s.Stats.LastClick.IsZero() {
		line += "\nlast click " + s.Stats.LastClick.Format(time.TimeOnly)
	}
	return line
}
