package entity

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamera(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewCamera(w, prefabs.NewLoaderFS(prefabs.PrefabsFS))
	require.NoError(t, err)

	name, ok := ecs.Get(w, e, component.NameComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "camera", name.Value)

	rot, ok := ecs.Get(w, e, component.LookRotatorComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "look", rot.Action)
	assert.True(t, rot.Enabled)
	assert.Equal(t, component.DefaultLookSettings(), rot.Settings)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 1.7, -6}, tr.Position)

	assert.True(t, ecs.Has(w, e, component.CameraComponent.Kind()))

	found, ok := FindByName(w, "camera")
	assert.True(t, ok)
	assert.Equal(t, e, found)
}

func TestNewCameraFromSpecInvalidLook(t *testing.T) {
	spec := &prefabs.CameraSpec{}
	spec.Look.MinPitch, spec.Look.MaxPitch = 10, -10
	_, err := NewCameraFromSpec(ecs.NewWorld(), spec)
	assert.Error(t, err)
}

func TestApplyLookSpec(t *testing.T) {
	rot := component.NewLookRotator("look")
	rot.Yaw, rot.Pitch = -80, -40

	spec := prefabs.LookSpec{
		Action:           "aim",
		Enabled:          false,
		SensitivityX:     20,
		SensitivityY:     30,
		MinPitch:         -10,
		MaxPitch:         10,
		MinYaw:           -45,
		MaxYaw:           45,
		MouseSensitivity: 0.5,
		InvertY:          true,
	}
	require.NoError(t, ApplyLookSpec(rot, &spec))

	assert.Equal(t, component.LookSettings{
		SensitivityX:     20,
		SensitivityY:     30,
		MinPitch:         -10,
		MaxPitch:         10,
		MinYaw:           -45,
		MaxYaw:           45,
		MouseSensitivity: 0.5,
		InvertY:          true,
	}, rot.Settings)
	assert.Equal(t, "aim", rot.Action)
	assert.False(t, rot.Enabled)
	assert.Equal(t, -45.0, rot.Yaw)
	assert.Equal(t, -10.0, rot.Pitch)

	before := rot.Settings
	spec.MinYaw, spec.MaxYaw = 1, -1
	assert.Error(t, ApplyLookSpec(rot, &spec))
	assert.Equal(t, before, rot.Settings, "invalid spec leaves settings alone")
}

func TestFindByNameMissing(t *testing.T) {
	_, ok := FindByName(ecs.NewWorld(), "camera")
	assert.False(t, ok)
}

func TestNewSceneFromSpec(t *testing.T) {
	w := ecs.NewWorld()
	spec := &prefabs.SceneSpec{
		Grid: prefabs.GridSpec{HalfExtent: 4, Spacing: 2, Color: prefabs.YAMLColor{R: 1, G: 2, B: 3, A: 255}},
		Markers: []prefabs.MarkerSpec{
			{Name: "a", Position: [3]float64{1, 0, 2}, Height: 3, Radius: 0.5, Color: prefabs.YAMLColor{R: 9, A: 255}},
			{Name: "b"},
		},
	}
	ents, err := NewSceneFromSpec(w, spec)
	require.NoError(t, err)
	require.Len(t, ents, 3)

	grid, ok := ecs.Get(w, ents[0], component.GridComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 4, grid.HalfExtent)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, grid.Color)

	m, ok := ecs.Get(w, ents[1], component.MarkerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 3.0, m.Height)
	tr, _ := ecs.Get(w, ents[1], component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{1, 0, 2}, tr.Position)

	m, _ = ecs.Get(w, ents[2], component.MarkerComponent.Kind())
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, m.Color, "missing color falls back to white")

	_, ok = FindByName(w, "b")
	assert.True(t, ok)
}

func TestNewSceneEmbedded(t *testing.T) {
	w := ecs.NewWorld()
	ents, err := NewScene(w, prefabs.NewLoaderFS(prefabs.PrefabsFS))
	require.NoError(t, err)
	assert.Len(t, ents, 6)
}
