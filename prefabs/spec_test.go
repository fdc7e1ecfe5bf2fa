package prefabs

import (
	"image/color"
	"io/fs"
	"testing"

	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	root := memfs.New()
	require.NoError(t, root.MkdirAll("scripts", 0o777))
	for name, content := range files {
		require.NoError(t, root.WriteFile(name, []byte(content), 0o644))
	}
	return NewLoaderFS(root)
}

func TestEmbeddedPrefabsLoad(t *testing.T) {
	l := NewLoaderFS(PrefabsFS)

	cam, err := LoadCameraSpec(l)
	require.NoError(t, err)
	assert.Equal(t, "camera", cam.Name)
	assert.Equal(t, "look", cam.Look.Action)
	assert.True(t, cam.Look.Enabled)
	assert.Equal(t, 150.0, cam.Look.SensitivityX)
	assert.Equal(t, -50.0, cam.Look.MinPitch)
	assert.Equal(t, 80.0, cam.Look.MaxPitch)
	assert.Equal(t, 0.05, cam.Look.MouseSensitivity)

	actions, err := LoadActionsSpec(l)
	require.NoError(t, err)
	require.NotEmpty(t, actions.Actions)
	assert.Equal(t, "look", actions.Actions[0].Name)

	scene, err := LoadSceneSpec(l)
	require.NoError(t, err)
	assert.NotEmpty(t, scene.Markers)

	_, err = l.Load("scripts/look_curve.tengo")
	assert.NoError(t, err)
}

func TestLoaderPrefersEarlierSources(t *testing.T) {
	override := memfs.New()
	require.NoError(t, override.WriteFile("camera.yaml", []byte("name: override\n"), 0o644))
	l := NewLoaderFS(override, PrefabsFS)

	data, err := l.Load("prefabs/camera.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: override\n", string(data))

	_, err = l.Load("scene.yaml")
	assert.NoError(t, err, "falls through to the embedded copy")

	_, err = l.Load("missing.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = l.Load("")
	assert.Error(t, err)
}

func TestCameraSpecDefaults(t *testing.T) {
	l := memLoader(t, map[string]string{"camera.yaml": "look:\n  sensitivity_x: 90\n"})
	cam, err := LoadCameraSpec(l)
	require.NoError(t, err)
	assert.Equal(t, "camera", cam.Name)
	assert.Equal(t, 90.0, cam.Look.SensitivityX)
	assert.Equal(t, 150.0, cam.Look.SensitivityY, "omitted fields keep defaults")
	assert.Equal(t, 70.0, cam.Camera.FOV)
	assert.True(t, cam.Look.Enabled)
}

func TestLookSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(s *LookSpec)
		wantErr bool
	}{
		{"defaults", func(s *LookSpec) {}, false},
		{"equal_bounds", func(s *LookSpec) { s.MinYaw, s.MaxYaw = 0, 0 }, false},
		{"inverted_pitch", func(s *LookSpec) { s.MinPitch, s.MaxPitch = 10, -10 }, true},
		{"inverted_yaw", func(s *LookSpec) { s.MinYaw, s.MaxYaw = 10, -10 }, true},
		{"negative_sensitivity", func(s *LookSpec) { s.SensitivityY = -1 }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s LookSpec
			s.setDefaults()
			c.mutate(&s)
			if c.wantErr {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}

func TestLoadCameraSpecRejectsInvalid(t *testing.T) {
	l := memLoader(t, map[string]string{"camera.yaml": "look:\n  min_pitch: 90\n  max_pitch: -90\n"})
	_, err := LoadCameraSpec(l)
	assert.Error(t, err)

	l = memLoader(t, map[string]string{"camera.yaml": "camera:\n  fov: 0\n"})
	_, err = LoadCameraSpec(l)
	assert.Error(t, err)

	l = memLoader(t, map[string]string{"camera.yaml": "look: [1, 2\n"})
	_, err = LoadCameraSpec(l)
	assert.Error(t, err)
}

func TestActionsSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"ok", "actions:\n  - name: look\n    bindings:\n      - type: mouse_delta\n", false},
		{"missing_name", "actions:\n  - bindings:\n      - type: mouse_delta\n", true},
		{"duplicate", "actions:\n  - name: a\n    bindings: [{type: mouse_delta}]\n  - name: a\n    bindings: [{type: mouse_delta}]\n", true},
		{"no_bindings", "actions:\n  - name: look\n", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadActionsSpec(memLoader(t, map[string]string{"actions.yaml": c.yaml}))
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSceneSpecColors(t *testing.T) {
	l := memLoader(t, map[string]string{"scene.yaml": `markers:
  - name: a
    position: [1, 0, 2]
    height: 3
    color: "#ff8000"
  - name: b
    color: "#10203040"
`})
	scene, err := LoadSceneSpec(l)
	require.NoError(t, err)
	require.Len(t, scene.Markers, 2)
	assert.Equal(t, [3]float64{1, 0, 2}, scene.Markers[0].Position)
	assert.Equal(t, color.RGBA{0xff, 0x80, 0x00, 0xff}, scene.Markers[0].Color.Color())
	assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 0x40}, scene.Markers[1].Color.Color())
	assert.Equal(t, 10, scene.Grid.HalfExtent, "grid defaults apply")

	_, err = LoadSceneSpec(memLoader(t, map[string]string{"scene.yaml": "grid:\n  color: \"#12\"\n"}))
	assert.Error(t, err)
}
