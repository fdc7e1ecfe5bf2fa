package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestViewProjection(t *testing.T) {
	cam := component.NewTransform(mgl64.Vec3{})
	v := newView(cam, &component.Camera{FOV: 90, Near: 0.1}, 200, 100)

	x, y := v.toScreen(mgl64.Vec3{0, 0, 5})
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	x, y = v.toScreen(mgl64.Vec3{1, 1, 1})
	assert.InDelta(t, 150, x, 1e-9, "right is +x on screen")
	assert.InDelta(t, 0, y, 1e-9, "up is -y on screen")
}

func TestViewDefaultsBadCamera(t *testing.T) {
	v := newView(component.NewTransform(mgl64.Vec3{}), &component.Camera{}, 100, 100)
	assert.Equal(t, 0.1, v.near)
	assert.Greater(t, v.focal, 0.0)
}

func TestViewSegmentClipping(t *testing.T) {
	cam := component.NewTransform(mgl64.Vec3{})
	v := newView(cam, &component.Camera{FOV: 90, Near: 1}, 200, 200)

	_, _, _, _, ok := v.segment(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{1, 0, -1})
	assert.False(t, ok, "fully behind")

	x0, _, x1, _, ok := v.segment(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -5})
	assert.True(t, ok)
	assert.InDelta(t, 100, x0, 1e-9)
	assert.InDelta(t, 100, x1, 1e-9)

	cam.SetEuler(0, 90, 0)
	_, _, _, _, ok = v.segment(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{-1, 0, 5})
	assert.False(t, ok, "looking right hides points ahead on +z")
}

func TestClipNear(t *testing.T) {
	p := clipNear(mgl64.Vec3{0, 0, 3}, mgl64.Vec3{2, 0, -1}, 1)
	assert.InDelta(t, 1, p.Z(), 1e-9)
	assert.InDelta(t, 1, p.X(), 1e-9)
}
