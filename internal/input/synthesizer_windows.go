//go:build windows
// +build windows

package input

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"jordanella.com/pixel-trigger-go/internal/logging"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSendInput           = user32.NewProc("SendInput")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procScreenToClient      = user32.NewProc("ScreenToClient")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procMouseEvent          = user32.NewProc("mouse_event")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	INPUT_MOUSE = 0

	MOUSEEVENTF_MOVE     = 0x0001
	MOUSEEVENTF_LEFTDOWN = 0x0002
	MOUSEEVENTF_LEFTUP   = 0x0004
	MOUSEEVENTF_ABSOLUTE = 0x8000

	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	MK_LBUTTON     = 0x0001

	SM_CXSCREEN = 0
	SM_CYSCREEN = 1
)

// POINT structure for Windows API
type POINT struct {
	X int32
	Y int32
}

// MOUSEINPUT structure
type MOUSEINPUT struct {
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// INPUT structure restricted to the mouse member of the union
type INPUT struct {
	Type uint32
	Mi   MOUSEINPUT
}

// WindowsSynthesizer clicks through SendInput, a posted window message, and mouse_event
type WindowsSynthesizer struct {
	logger *logging.Logger
}

// NewSynthesizer returns the Windows click synthesizer
func NewSynthesizer(logger *logging.Logger) Synthesizer {
	if logger == nil {
		logger = logging.NewLogger("Input")
	}
	return &WindowsSynthesizer{logger: logger}
}

// Click runs every delivery path once. Failures are only logged.
func (s *WindowsSynthesizer) Click() {
	var pos POINT
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pos)))
	if ret == 0 {
		s.logger.Debug(fmt.Sprintf("GetCursorPos failed, clicking at (0,0): %v", err))
	}

	errs := []error{
		s.sendInputClick(pos),
		s.postMessageClick(pos),
		s.legacyClick(),
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.DebugWithContext("Click delivery path failed", map[string]interface{}{
			"error": err.Error(),
			"x":     pos.X,
			"y":     pos.Y,
		})
	}
}

// sendInputClick moves to the cursor's own position (in case it drifted) then presses and releases
func (s *WindowsSynthesizer) sendInputClick(pos POINT) error {
	w, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	h, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	if int32(w) <= 0 || int32(h) <= 0 {
		return fmt.Errorf("sendinput: invalid screen dimensions %dx%d", int32(w), int32(h))
	}

	inputs := [3]INPUT{
		{Type: INPUT_MOUSE, Mi: MOUSEINPUT{
			Dx:    pos.X * 65535 / int32(w),
			Dy:    pos.Y * 65535 / int32(h),
			Flags: MOUSEEVENTF_MOVE | MOUSEEVENTF_ABSOLUTE,
		}},
		{Type: INPUT_MOUSE, Mi: MOUSEINPUT{Flags: MOUSEEVENTF_LEFTDOWN}},
		{Type: INPUT_MOUSE, Mi: MOUSEINPUT{Flags: MOUSEEVENTF_LEFTUP}},
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("sendinput: %d/%d events inserted: %v", sent, len(inputs), err)
	}
	return nil
}

// postMessageClick posts button messages to the foreground window in client coordinates
func (s *WindowsSynthesizer) postMessageClick(pos POINT) error {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return errors.New("postmessage: no foreground window")
	}

	client := pos
	if ret, _, err := procScreenToClient.Call(hwnd, uintptr(unsafe.Pointer(&client))); ret == 0 {
		return fmt.Errorf("postmessage: ScreenToClient failed: %v", err)
	}
	lParam := makeLParam(client.X, client.Y)

	if ret, _, err := procPostMessageW.Call(hwnd, WM_LBUTTONDOWN, MK_LBUTTON, lParam); ret == 0 {
		return fmt.Errorf("postmessage: button down: %v", err)
	}
	time.Sleep(messagePathPause)
	if ret, _, err := procPostMessageW.Call(hwnd, WM_LBUTTONUP, 0, lParam); ret == 0 {
		return fmt.Errorf("postmessage: button up: %v", err)
	}
	return nil
}

// legacyClick uses mouse_event, which has no failure reporting
func (s *WindowsSynthesizer) legacyClick() error {
	if err := procMouseEvent.Find(); err != nil {
		return fmt.Errorf("mouse_event: %w", err)
	}
	procMouseEvent.Call(MOUSEEVENTF_LEFTDOWN, 0, 0, 0, 0)
	time.Sleep(legacyPathPause)
	procMouseEvent.Call(MOUSEEVENTF_LEFTUP, 0, 0, 0, 0)
	return nil
}

func makeLParam(x, y int32) uintptr {
	return uintptr(uint32(uint16(x)) | uint32(uint16(y))<<16)
}

// AsyncKeyState reads key state with GetAsyncKeyState
type AsyncKeyState struct{}

// NewKeyState returns the Windows key state reader
func NewKeyState() KeyState {
	return AsyncKeyState{}
}

func (AsyncKeyState) IsPressed(k KeyCode) bool {
	if k == KeyNone {
		return false
	}
	ret, _, _ := procGetAsyncKeyState.Call(uintptr(k))
	return uint16(ret)&0x8000 != 0
}
