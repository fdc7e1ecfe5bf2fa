package component

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-9), "want %v, got %v", want, got)
}

func TestEulerForward(t *testing.T) {
	cases := []struct {
		name       string
		pitch, yaw float64
		want       mgl64.Vec3
	}{
		{"identity", 0, 0, mgl64.Vec3{0, 0, 1}},
		{"yaw_right", 0, 90, mgl64.Vec3{1, 0, 0}},
		{"yaw_left", 0, -90, mgl64.Vec3{-1, 0, 0}},
		{"pitch_down", 90, 0, mgl64.Vec3{0, -1, 0}},
		{"pitch_up", -90, 0, mgl64.Vec3{0, 1, 0}},
		{"pitch_then_yaw", 90, 90, mgl64.Vec3{0, -1, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewTransform(mgl64.Vec3{})
			tr.SetEuler(c.pitch, c.yaw, 0)
			assertVec(t, c.want, tr.Forward())
		})
	}
}

func TestEulerKeepsHorizonLevel(t *testing.T) {
	tr := NewTransform(mgl64.Vec3{})
	tr.SetEuler(30, 45, 0)
	// with zero roll the right vector never tilts
	assert.InDelta(t, 0, tr.Right().Y(), 1e-9)
	assert.InDelta(t, 1, tr.Up().Len(), 1e-9)
}

func TestZeroTransformIsIdentity(t *testing.T) {
	var tr Transform
	assertVec(t, mgl64.Vec3{0, 0, 1}, tr.Forward())
}

func TestToLocal(t *testing.T) {
	tr := NewTransform(mgl64.Vec3{0, 1, 0})
	tr.SetEuler(0, 90, 0)
	// a point to the world's +X is straight ahead after turning right
	assertVec(t, mgl64.Vec3{0, 0, 5}, tr.ToLocal(mgl64.Vec3{5, 1, 0}))
}
