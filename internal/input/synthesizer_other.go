//go:build !windows
// +build !windows

package input

import (
	"github.com/go-vgo/robotgo"

	"jordanella.com/pixel-trigger-go/internal/logging"
)

// RobotSynthesizer clicks through robotgo (XTest on X11, CGEvent on macOS).
// There is only one delivery path here, so the pauses of the Windows paths do not apply.
type RobotSynthesizer struct {
	logger *logging.Logger
}

// NewSynthesizer returns the robotgo backed synthesizer
func NewSynthesizer(logger *logging.Logger) Synthesizer {
	if logger == nil {
		logger = logging.NewLogger("Input")
	}
	return &RobotSynthesizer{logger: logger}
}

func (s *RobotSynthesizer) Click() {
	robotgo.Click("left")
	s.logger.Debug("Click sent")
}

// NewKeyState returns a key state that reports every key as released.
// robotgo can only listen for key events, not poll them, so the hold key and
// movement lockout are Windows only.
func NewKeyState() KeyState {
	return KeyStateFunc(func(KeyCode) bool { return false })
}
