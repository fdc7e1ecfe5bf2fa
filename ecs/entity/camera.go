package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

// NewCamera builds the first-person camera: a transform, a look rotator and
// a render camera, configured from camera.yaml.
func NewCamera(w *ecs.World, loader *prefabs.Loader) (ecs.Entity, error) {
	spec, err := prefabs.LoadCameraSpec(loader)
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	return NewCameraFromSpec(w, spec)
}

func NewCameraFromSpec(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return 0, fmt.Errorf("camera: add name: %w", err)
	}

	p := spec.Transform.Position
	transform := component.NewTransform(mgl64.Vec3{p[0], p[1], p[2]})
	transform.SetEuler(spec.Transform.Pitch, spec.Transform.Yaw, spec.Transform.Roll)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), transform); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	rot := component.NewLookRotator(spec.Look.Action)
	if err := ApplyLookSpec(rot, &spec.Look); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, camera, component.LookRotatorComponent.Kind(), rot); err != nil {
		return 0, fmt.Errorf("camera: add look rotator: %w", err)
	}

	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		FOV:  spec.Camera.FOV,
		Near: spec.Camera.Near,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}

	return camera, nil
}

// ApplyLookSpec copies spec onto rot. Accumulated yaw and pitch are kept but
// pulled into the new bounds. Changing the action name while enabled is
// picked up by the look system as a rebind.
func ApplyLookSpec(rot *component.LookRotator, spec *prefabs.LookSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	settings := rot.Settings
	if err := copier.Copy(&settings, spec); err != nil {
		return fmt.Errorf("camera: copy look settings: %w", err)
	}
	rot.Settings = settings
	rot.Action = spec.Action
	rot.Enabled = spec.Enabled
	rot.Clamp()
	return nil
}

// FindByName returns the first entity with the given name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}
