package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
)

var (
	skyColor       = color.RGBA{0x14, 0x16, 0x1c, 0xff}
	crosshairColor = color.RGBA{0xf0, 0xf0, 0xf0, 0xc0}
)

// RenderSystem draws the scene as wireframe from the first camera entity.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// view projects camera-local points onto a screen of size w by h.
type view struct {
	cam   *component.Transform
	near  float64
	focal float64
	cx    float64
	cy    float64
}

func newView(cam *component.Transform, c *component.Camera, w, h int) view {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 70
	}
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	return view{
		cam:   cam,
		near:  near,
		focal: float64(h) / 2 / math.Tan(mgl64.DegToRad(fov)/2),
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
	}
}

// toScreen maps a camera-local point in front of the near plane to pixels.
func (v view) toScreen(local mgl64.Vec3) (float64, float64) {
	return v.cx + v.focal*local.X()/local.Z(), v.cy - v.focal*local.Y()/local.Z()
}

// segment clips the world-space segment a-b against the near plane and
// returns its screen endpoints.
func (v view) segment(a, b mgl64.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	la, lb := v.cam.ToLocal(a), v.cam.ToLocal(b)
	if la.Z() < v.near && lb.Z() < v.near {
		return 0, 0, 0, 0, false
	}
	if la.Z() < v.near {
		la = clipNear(lb, la, v.near)
	} else if lb.Z() < v.near {
		lb = clipNear(la, lb, v.near)
	}
	x0, y0 = v.toScreen(la)
	x1, y1 = v.toScreen(lb)
	return x0, y0, x1, y1, true
}

// clipNear moves behind toward front until it sits on the z=near plane.
func clipNear(front, behind mgl64.Vec3, near float64) mgl64.Vec3 {
	t := (near - front.Z()) / (behind.Z() - front.Z())
	return front.Add(behind.Sub(front).Mul(t))
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(skyColor)

	if !ecs.IsAlive(w, r.camEntity) || !ecs.Has(w, r.camEntity, component.CameraComponent.Kind()) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		r.camEntity = camEntity
	}
	camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		cam = &component.Camera{}
	}

	bounds := screen.Bounds()
	v := newView(camTransform, cam, bounds.Dx(), bounds.Dy())

	ecs.ForEach(w, component.GridComponent.Kind(), func(_ ecs.Entity, g *component.Grid) {
		drawGrid(screen, v, g)
	})
	drawMarkers(screen, w, v)
	drawCrosshair(screen, v)
}

func drawGrid(screen *ebiten.Image, v view, g *component.Grid) {
	spacing := g.Spacing
	if spacing <= 0 {
		spacing = 1
	}
	extent := float64(g.HalfExtent) * spacing
	for i := -g.HalfExtent; i <= g.HalfExtent; i++ {
		o := float64(i) * spacing
		if x0, y0, x1, y1, ok := v.segment(mgl64.Vec3{o, 0, -extent}, mgl64.Vec3{o, 0, extent}); ok {
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, g.Color, true)
		}
		if x0, y0, x1, y1, ok := v.segment(mgl64.Vec3{-extent, 0, o}, mgl64.Vec3{extent, 0, o}); ok {
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, g.Color, true)
		}
	}
}

type markerDraw struct {
	depth  float64
	base   mgl64.Vec3
	top    mgl64.Vec3
	marker *component.Marker
}

func drawMarkers(screen *ebiten.Image, w *ecs.World, v view) {
	var draws []markerDraw
	ecs.Query2(w, component.TransformComponent.Kind(), component.MarkerComponent.Kind(), func(_ ecs.Entity, t *component.Transform, m *component.Marker) {
		base := t.Position
		top := base.Add(mgl64.Vec3{0, m.Height, 0})
		mid := v.cam.ToLocal(base.Add(top).Mul(0.5))
		draws = append(draws, markerDraw{depth: mid.Z(), base: base, top: top, marker: m})
	})
	// far to near so closer pillars overdraw
	sort.Slice(draws, func(i, j int) bool { return draws[i].depth > draws[j].depth })

	for _, d := range draws {
		if d.depth < v.near {
			continue
		}
		x0, y0, x1, y1, ok := v.segment(d.base, d.top)
		if !ok {
			continue
		}
		width := v.focal * 2 * d.marker.Radius / d.depth
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(max(width, 1)), d.marker.Color, true)
	}
}

func drawCrosshair(screen *ebiten.Image, v view) {
	const size = 6
	cx, cy := float32(v.cx), float32(v.cy)
	vector.StrokeLine(screen, cx-size, cy, cx+size, cy, 1, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-size, cx, cy+size, 1, crosshairColor, false)
}
