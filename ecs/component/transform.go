package component

import "github.com/go-gl/mathgl/mgl64"

var (
	axisRight   = mgl64.Vec3{1, 0, 0}
	axisUp      = mgl64.Vec3{0, 1, 0}
	axisForward = mgl64.Vec3{0, 0, 1}
)

// Transform places an entity in the 3D scene. The frame is left-handed:
// +X right, +Y up, +Z forward.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform returns a transform at position with identity rotation and unit scale.
func NewTransform(position mgl64.Vec3) *Transform {
	return &Transform{
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// EulerToQuat composes a rotation from angles in degrees, applying roll about
// Z first, then pitch about X, then yaw about Y. Positive pitch looks down.
func EulerToQuat(pitch, yaw, roll float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), axisUp)
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), axisRight)
	qz := mgl64.QuatRotate(mgl64.DegToRad(roll), axisForward)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// SetEuler replaces the rotation with the given Euler angles in degrees.
func (t *Transform) SetEuler(pitch, yaw, roll float64) {
	t.Rotation = EulerToQuat(pitch, yaw, roll)
}

func (t *Transform) rotation() mgl64.Quat {
	// the zero Quat is not a rotation; treat it as identity
	if t.Rotation.W == 0 && t.Rotation.V.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

func (t *Transform) Forward() mgl64.Vec3 {
	return t.rotation().Rotate(axisForward)
}

func (t *Transform) Right() mgl64.Vec3 {
	return t.rotation().Rotate(axisRight)
}

func (t *Transform) Up() mgl64.Vec3 {
	return t.rotation().Rotate(axisUp)
}

// ToLocal maps a world-space point into this transform's local frame,
// ignoring scale.
func (t *Transform) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(p.Sub(t.Position))
}

var TransformComponent = NewComponent[Transform]()
