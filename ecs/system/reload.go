package system

import (
	"log/slog"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/input"
	"github.com/milk9111/freelook/prefabs"
)

// ReloadSystem applies prefab edits while the game runs. It reads changes
// from a prefabs.Watcher without blocking.
type ReloadSystem struct {
	changes <-chan prefabs.Change
	loader  *prefabs.Loader
	actions *input.ActionMap
}

func NewReloadSystem(changes <-chan prefabs.Change, loader *prefabs.Loader, actions *input.ActionMap) *ReloadSystem {
	return &ReloadSystem{changes: changes, loader: loader, actions: actions}
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if r == nil || r.changes == nil {
		return
	}
	pending := map[string]bool{}
drain:
	for {
		select {
		case change, ok := <-r.changes:
			if !ok {
				r.changes = nil
				break drain
			}
			if change.Kind == prefabs.ChangeScript {
				// scripts are only reachable through action processors
				pending[prefabs.ActionsFile] = true
				continue
			}
			pending[change.File()] = true
		default:
			break drain
		}
	}
	r.apply(w, pending)
}

func (r *ReloadSystem) apply(w *ecs.World, pending map[string]bool) {
	if pending[prefabs.ActionsFile] {
		if err := r.reloadActions(); err != nil {
			slog.Error("reload: actions", "err", err)
		} else {
			slog.Info("reload: actions applied")
		}
	}
	if pending[prefabs.CameraFile] {
		if err := r.reloadCamera(w); err != nil {
			slog.Error("reload: camera", "err", err)
		} else {
			slog.Info("reload: camera applied")
		}
	}
	if pending[prefabs.SceneFile] {
		if err := r.reloadScene(w); err != nil {
			slog.Error("reload: scene", "err", err)
		} else {
			slog.Info("reload: scene applied")
		}
	}
}

func (r *ReloadSystem) reloadActions() error {
	spec, err := prefabs.LoadActionsSpec(r.loader)
	if err != nil {
		return err
	}
	return input.ReconfigureActionMap(r.actions, spec, r.loader)
}

func (r *ReloadSystem) reloadCamera(w *ecs.World) error {
	spec, err := prefabs.LoadCameraSpec(r.loader)
	if err != nil {
		return err
	}
	e, ok := entity.FindByName(w, spec.Name)
	if !ok {
		slog.Warn("reload: camera entity not found", "name", spec.Name)
		return nil
	}
	if rot, ok := ecs.Get(w, e, component.LookRotatorComponent.Kind()); ok {
		if err := entity.ApplyLookSpec(rot, &spec.Look); err != nil {
			return err
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.SetEuler(rot.Pitch, rot.Yaw, 0)
		}
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
		cam.FOV = spec.Camera.FOV
		cam.Near = spec.Camera.Near
	}
	return nil
}

func (r *ReloadSystem) reloadScene(w *ecs.World) error {
	spec, err := prefabs.LoadSceneSpec(r.loader)
	if err != nil {
		return err
	}
	var stale []ecs.Entity
	ecs.ForEach(w, component.MarkerComponent.Kind(), func(e ecs.Entity, _ *component.Marker) {
		stale = append(stale, e)
	})
	ecs.ForEach(w, component.GridComponent.Kind(), func(e ecs.Entity, _ *component.Grid) {
		stale = append(stale, e)
	})
	for _, e := range stale {
		ecs.DestroyEntity(w, e)
	}
	_, err = entity.NewSceneFromSpec(w, spec)
	return err
}
