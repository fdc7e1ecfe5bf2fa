package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/common"
	"github.com/milk9111/freelook/input"
)

// LookSettings tune how look input maps to rotation. Angles are degrees,
// sensitivities are degrees per second per unit of input.
type LookSettings struct {
	SensitivityX     float64
	SensitivityY     float64
	MinPitch         float64
	MaxPitch         float64
	MinYaw           float64
	MaxYaw           float64
	// MouseSensitivity scales mouse deltas before the axis sensitivities, so
	// pixel deltas land in the same range as stick deflection. Mouse look is
	// therefore slower by this factor than applying the axis sensitivities
	// to raw pixels.
	MouseSensitivity float64
	InvertY          bool
}

// DefaultLookSettings returns the stock first-person tuning.
func DefaultLookSettings() LookSettings {
	return LookSettings{
		SensitivityX:     150,
		SensitivityY:     150,
		MinPitch:         -50,
		MaxPitch:         80,
		MinYaw:           -90,
		MaxYaw:           90,
		MouseSensitivity: 0.05,
	}
}

// LookRotator turns a 2D look action into a clamped pitch/yaw rotation of
// the owning entity. Action names the look action in the input action map.
type LookRotator struct {
	Action   string
	Enabled  bool
	Settings LookSettings

	Yaw   float64
	Pitch float64
}

// NewLookRotator returns an enabled rotator bound to action with default settings.
func NewLookRotator(action string) *LookRotator {
	return &LookRotator{
		Action:   action,
		Enabled:  true,
		Settings: DefaultLookSettings(),
	}
}

// Apply accumulates one input sample over dt seconds and returns the clamped
// pitch and yaw. Mouse deltas are scaled by MouseSensitivity on top of the
// axis sensitivities.
func (l *LookRotator) Apply(value mgl64.Vec2, dt float64, device input.Device) (pitch, yaw float64) {
	s := l.Settings
	if device == input.DeviceMouse {
		value = value.Mul(s.MouseSensitivity)
	}
	dy := value.Y()
	if s.InvertY {
		dy = -dy
	}

	l.Yaw += value.X() * s.SensitivityX * dt
	l.Pitch -= dy * s.SensitivityY * dt

	l.Clamp()
	return l.Pitch, l.Yaw
}

// Clamp forces the accumulated angles into the configured bounds.
func (l *LookRotator) Clamp() {
	l.Pitch = common.Clamp(l.Pitch, l.Settings.MinPitch, l.Settings.MaxPitch)
	l.Yaw = common.Clamp(l.Yaw, l.Settings.MinYaw, l.Settings.MaxYaw)
}

var LookRotatorComponent = NewComponent[LookRotator]()
