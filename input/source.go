package input

import "github.com/hajimehoshi/ebiten/v2"

// Device identifies the kind of hardware a value came from.
type Device int

const (
	DeviceNone Device = iota
	DeviceMouse
	DeviceKeyboard
	DeviceGamepad
)

func (d Device) String() string {
	switch d {
	case DeviceMouse:
		return "mouse"
	case DeviceKeyboard:
		return "keyboard"
	case DeviceGamepad:
		return "gamepad"
	default:
		return "none"
	}
}

// Source is the raw device state bindings read from once per frame.
type Source interface {
	CursorPosition() (x, y int)
	IsKeyPressed(key ebiten.Key) bool
	// GamepadAxis reads a standard axis of the first connected gamepad.
	// It reports false when no standard gamepad is connected.
	GamepadAxis(axis ebiten.StandardGamepadAxis) (float64, bool)
}

// EbitenSource reads devices through ebiten. It must only be used from the
// game's Update goroutine.
type EbitenSource struct {
	gamepads []ebiten.GamepadID
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (s *EbitenSource) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (s *EbitenSource) GamepadAxis(axis ebiten.StandardGamepadAxis) (float64, bool) {
	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	for _, id := range s.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		return ebiten.StandardGamepadAxisValue(id, axis), true
	}
	return 0, false
}
