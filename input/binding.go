package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Binding reads a 2D value from one control. Values use +Y for up.
type Binding interface {
	Device() Device
	Read(src Source) mgl64.Vec2
}

// resetter is implemented by bindings that carry state between frames.
type resetter interface {
	Reset()
}

// MouseDelta reports how far the cursor moved since the previous frame, in pixels.
type MouseDelta struct {
	prevX, prevY int
	primed       bool
}

func (m *MouseDelta) Device() Device { return DeviceMouse }

func (m *MouseDelta) Read(src Source) mgl64.Vec2 {
	x, y := src.CursorPosition()
	if !m.primed {
		m.prevX, m.prevY, m.primed = x, y, true
		return mgl64.Vec2{}
	}
	dx, dy := x-m.prevX, y-m.prevY
	m.prevX, m.prevY = x, y
	// screen y grows downward
	return mgl64.Vec2{float64(dx), float64(-dy)}
}

// Reset drops the previous cursor position so the next read reports zero.
func (m *MouseDelta) Reset() {
	m.primed = false
}

// Stick selects one of the two analog sticks of a standard gamepad.
type Stick int

const (
	StickLeft Stick = iota
	StickRight
)

// GamepadStick reports the deflection of an analog stick in [-1, 1].
type GamepadStick struct {
	Stick Stick
}

func (g *GamepadStick) Device() Device { return DeviceGamepad }

func (g *GamepadStick) Read(src Source) mgl64.Vec2 {
	h, v := ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical
	if g.Stick == StickRight {
		h, v = ebiten.StandardGamepadAxisRightStickHorizontal, ebiten.StandardGamepadAxisRightStickVertical
	}
	x, ok := src.GamepadAxis(h)
	if !ok {
		return mgl64.Vec2{}
	}
	y, _ := src.GamepadAxis(v)
	return mgl64.Vec2{x, -y}
}

// Composite2D builds a vector from four sets of keys. Any pressed key in a
// set counts as full deflection in that direction.
type Composite2D struct {
	Up, Down, Left, Right []ebiten.Key
	Normalize             bool
}

func (c *Composite2D) Device() Device { return DeviceKeyboard }

func (c *Composite2D) Read(src Source) mgl64.Vec2 {
	var v mgl64.Vec2
	if anyPressed(src, c.Right) {
		v[0]++
	}
	if anyPressed(src, c.Left) {
		v[0]--
	}
	if anyPressed(src, c.Up) {
		v[1]++
	}
	if anyPressed(src, c.Down) {
		v[1]--
	}
	if c.Normalize && v.Len() > 1 {
		v = v.Normalize()
	}
	return v
}

func anyPressed(src Source, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
