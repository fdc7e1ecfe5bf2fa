package component

import "image/color"

// Camera marks the entity the scene is rendered from.
type Camera struct {
	FOV  float64
	Near float64
}

var CameraComponent = NewComponent[Camera]()

// Marker is a vertical pillar in the demo scene, standing on its transform position.
type Marker struct {
	Height float64
	Radius float64
	Color  color.RGBA
}

var MarkerComponent = NewComponent[Marker]()

// Grid is the ground grid drawn on the y=0 plane, centered on the origin.
type Grid struct {
	HalfExtent int
	Spacing    float64
	Color      color.RGBA
}

var GridComponent = NewComponent[Grid]()
