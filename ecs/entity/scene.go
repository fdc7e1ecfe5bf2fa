package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

// NewScene builds the ground grid and marker pillars from scene.yaml.
func NewScene(w *ecs.World, loader *prefabs.Loader) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadSceneSpec(loader)
	if err != nil {
		return nil, fmt.Errorf("scene: load spec: %w", err)
	}
	return NewSceneFromSpec(w, spec)
}

func NewSceneFromSpec(w *ecs.World, spec *prefabs.SceneSpec) ([]ecs.Entity, error) {
	var out []ecs.Entity

	grid := ecs.CreateEntity(w)
	if err := ecs.Add(w, grid, component.GridComponent.Kind(), &component.Grid{
		HalfExtent: spec.Grid.HalfExtent,
		Spacing:    spec.Grid.Spacing,
		Color:      spec.Grid.Color.Color(),
	}); err != nil {
		return nil, fmt.Errorf("scene: add grid: %w", err)
	}
	out = append(out, grid)

	for _, ms := range spec.Markers {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: ms.Name}); err != nil {
			return nil, fmt.Errorf("scene: marker %s: add name: %w", ms.Name, err)
		}
		p := ms.Position
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{p[0], p[1], p[2]})); err != nil {
			return nil, fmt.Errorf("scene: marker %s: add transform: %w", ms.Name, err)
		}
		c := ms.Color.Color()
		if c.A == 0 {
			c = color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		if err := ecs.Add(w, e, component.MarkerComponent.Kind(), &component.Marker{
			Height: ms.Height,
			Radius: ms.Radius,
			Color:  c,
		}); err != nil {
			return nil, fmt.Errorf("scene: marker %s: add marker: %w", ms.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}
