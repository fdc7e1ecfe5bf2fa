package system

import (
	"testing"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/input"
	"github.com/milk9111/freelook/prefabs"
	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reloadFixture struct {
	disk    *memfs.FS
	loader  *prefabs.Loader
	world   *ecs.World
	actions *input.ActionMap
	camera  ecs.Entity
	changes chan prefabs.Change
	reload  *ReloadSystem
}

func newReloadFixture(t *testing.T) *reloadFixture {
	t.Helper()
	f := &reloadFixture{
		disk:    memfs.New(),
		world:   ecs.NewWorld(),
		changes: make(chan prefabs.Change, 8),
	}
	f.loader = prefabs.NewLoaderFS(f.disk, prefabs.PrefabsFS)

	actionsSpec, err := prefabs.LoadActionsSpec(f.loader)
	require.NoError(t, err)
	f.actions, err = input.BuildActionMap(actionsSpec, f.loader)
	require.NoError(t, err)

	f.camera, err = entity.NewCamera(f.world, f.loader)
	require.NoError(t, err)
	_, err = entity.NewScene(f.world, f.loader)
	require.NoError(t, err)

	f.reload = NewReloadSystem(f.changes, f.loader, f.actions)
	return f
}

func (f *reloadFixture) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, f.disk.WriteFile(name, []byte(content), 0o644))
	f.changes <- prefabs.Change{Path: "prefabs/" + name, Kind: prefabs.ChangeSpec}
}

func countMarkers(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.MarkerComponent.Kind(), func(ecs.Entity, *component.Marker) { n++ })
	return n
}

func TestReloadCamera(t *testing.T) {
	f := newReloadFixture(t)
	rot, ok := ecs.Get(f.world, f.camera, component.LookRotatorComponent.Kind())
	require.True(t, ok)
	rot.Yaw, rot.Pitch = 60, 40

	f.write(t, "camera.yaml", `look:
  sensitivity_x: 90
  min_yaw: -30
  max_yaw: 30
  max_pitch: 20
camera:
  fov: 90
`)
	f.reload.Update(f.world)

	assert.Equal(t, 90.0, rot.Settings.SensitivityX)
	assert.Equal(t, 30.0, rot.Yaw, "accumulated yaw pulled into new bounds")
	assert.Equal(t, 20.0, rot.Pitch)

	tr, ok := ecs.Get(f.world, f.camera, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.True(t, tr.Rotation.ApproxEqual(component.EulerToQuat(20, 30, 0)))

	cam, ok := ecs.Get(f.world, f.camera, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 90.0, cam.FOV)
}

func TestReloadCameraInvalidKeepsSettings(t *testing.T) {
	f := newReloadFixture(t)
	rot, _ := ecs.Get(f.world, f.camera, component.LookRotatorComponent.Kind())
	before := rot.Settings

	f.write(t, "camera.yaml", "look:\n  min_yaw: 10\n  max_yaw: -10\n")
	f.reload.Update(f.world)

	assert.Equal(t, before, rot.Settings)
}

func TestReloadScene(t *testing.T) {
	f := newReloadFixture(t)
	require.Greater(t, countMarkers(f.world), 1)

	f.write(t, "scene.yaml", "markers:\n  - name: only\n    height: 1\n    color: \"#ffffff\"\n")
	f.reload.Update(f.world)

	assert.Equal(t, 1, countMarkers(f.world))
	_, ok := entity.FindByName(f.world, "only")
	assert.True(t, ok)
	assert.True(t, ecs.IsAlive(f.world, f.camera), "camera survives scene reload")
}

func TestReloadActionsKeepsSubscriptions(t *testing.T) {
	f := newReloadFixture(t)
	look, ok := f.actions.Action("look")
	require.True(t, ok)
	look.OnPerformed(func(input.CallbackContext) {})

	f.write(t, "actions.yaml", "actions:\n  - name: look\n    mode: value\n    bindings:\n      - type: mouse_delta\n")
	f.reload.Update(f.world)

	after, ok := f.actions.Action("look")
	require.True(t, ok)
	assert.Same(t, look, after)
	assert.Equal(t, input.ModeValue, after.Mode())
	assert.Equal(t, 1, after.Subscribers())
}

func TestReloadScriptChangeRebuildsActions(t *testing.T) {
	f := newReloadFixture(t)
	require.NoError(t, f.disk.MkdirAll("scripts", 0o777))
	require.NoError(t, f.disk.WriteFile("scripts/look_curve.tengo", []byte("x = x * 3\n"), 0o644))
	f.changes <- prefabs.Change{Path: "prefabs/scripts/look_curve.tengo", Kind: prefabs.ChangeScript}

	look, _ := f.actions.Action("look")
	look.Enable()
	f.reload.Update(f.world)

	assert.Equal(t, input.ModePassThrough, look.Mode())
	assert.True(t, look.Enabled(), "rebinding keeps the enable count")
}

func TestReloadDrainsClosedChannel(t *testing.T) {
	f := newReloadFixture(t)
	close(f.changes)
	f.reload.Update(f.world)
	assert.Nil(t, f.reload.changes)
	f.reload.Update(f.world)
}
