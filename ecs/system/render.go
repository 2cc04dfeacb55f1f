package system

import (
	"image"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cubespawner/common"
	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/component"
)

const (
	backFaceShade = 0.6
	topFaceShade  = 0.8
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Viewport maps world space onto the screen: the world origin lands on
// (OriginX, OriginY).
type Viewport struct {
	OriginX float64
	OriginY float64
	Zoom    float64
}

func (v Viewport) project(x, y, z float64) (float32, float32) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	sx, sy := common.Project(x, y, z, v.OriginX, v.OriginY, zoom)
	return float32(sx), float32(sy)
}

func (v Viewport) pixels(units float64) float32 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float32(units * common.PixelsPerUnit * zoom)
}

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, view Viewport) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	layers := make(map[ecs.Entity]int, len(entities))
	depths := make(map[ecs.Entity]float64, len(entities))
	for _, e := range entities {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layers[e] = layer.Index
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		depths[e] = t.Z
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layers[entities[i]], layers[entities[j]]
		if li != lj {
			return li < lj
		}
		// far first
		if depths[entities[i]] != depths[entities[j]] {
			return depths[entities[i]] > depths[entities[j]]
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		shape, _ := ecs.Get(w, e, component.ShapeComponent.Kind())

		var fill color.Color = color.White
		if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok && tint.Color != nil {
			fill = tint.Color
		}

		switch shape.Kind {
		case component.ShapeCircle:
			drawSphere(screen, view, *t, *shape, fill)
		default:
			drawBox(screen, view, *t, *shape, fill)
		}
	}
}

func drawSphere(screen *ebiten.Image, view Viewport, t component.Transform, shape component.Shape, fill color.Color) {
	radius := shape.Radius * math.Max(t.ScaleX, t.ScaleY)
	if radius <= 0 {
		return
	}
	cx, cy := view.project(t.X, t.Y, t.Z)
	vector.DrawFilledCircle(screen, cx, cy, view.pixels(radius), fill, true)
}

// drawBox extrudes the rotated front face along Z. Side faces pointing away
// from the depth skew go down first so the front face and the visible sides
// cover them.
func drawBox(screen *ebiten.Image, view Viewport, t component.Transform, shape component.Shape, fill color.Color) {
	w := shape.Width * t.ScaleX
	h := shape.Height * t.ScaleY
	depth := shape.Depth
	if depth <= 0 {
		depth = shape.Width
	}
	d := depth * t.ScaleZ
	if w <= 0 || h <= 0 {
		return
	}

	front := boxCorners(t, w, h)
	zFront, zBack := t.Z-d/2, t.Z+d/2
	if d > 0 {
		type side struct {
			a, b   [2]float64
			facing float64
		}
		sides := make([]side, 0, len(front))
		for i := range front {
			a, b := front[i], front[(i+1)%len(front)]
			// outward normal of a counter-clockwise edge is (dy, -dx)
			nx, ny := b[1]-a[1], -(b[0] - a[0])
			sides = append(sides, side{a: a, b: b, facing: nx + ny})
		}
		sort.SliceStable(sides, func(i, j int) bool { return sides[i].facing < sides[j].facing })
		for _, sd := range sides {
			k := backFaceShade
			if sd.facing > 0 && sd.a[1]+sd.b[1] > 2*t.Y {
				k = topFaceShade
			}
			fillQuad(screen, view, [4][3]float64{
				{sd.a[0], sd.a[1], zFront},
				{sd.b[0], sd.b[1], zFront},
				{sd.b[0], sd.b[1], zBack},
				{sd.a[0], sd.a[1], zBack},
			}, shade(fill, k))
		}
	}

	var quad [4][3]float64
	for i, p := range front {
		quad[i] = [3]float64{p[0], p[1], zFront}
	}
	fillQuad(screen, view, quad, fill)
}

// boxCorners returns the X/Y corners of a rotated box, counter-clockwise.
func boxCorners(t component.Transform, w, h float64) [4][2]float64 {
	sin, cos := math.Sincos(t.Rotation)
	local := [4][2]float64{
		{-w / 2, -h / 2},
		{w / 2, -h / 2},
		{w / 2, h / 2},
		{-w / 2, h / 2},
	}
	var out [4][2]float64
	for i, p := range local {
		out[i] = [2]float64{
			t.X + p[0]*cos - p[1]*sin,
			t.Y + p[0]*sin + p[1]*cos,
		}
	}
	return out
}

func fillQuad(screen *ebiten.Image, view Viewport, pts [4][3]float64, fill color.Color) {
	r, g, b, a := fill.RGBA()
	cr := float32(r) / 0xffff
	cg := float32(g) / 0xffff
	cb := float32(b) / 0xffff
	ca := float32(a) / 0xffff

	vs := make([]ebiten.Vertex, 0, len(pts))
	for _, p := range pts {
		sx, sy := view.project(p[0], p[1], p[2])
		vs = append(vs, ebiten.Vertex{
			DstX:   sx,
			DstY:   sy,
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	is := []uint16{0, 1, 2, 0, 2, 3}
	screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func shade(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * f),
		G: uint16(float64(g) * f),
		B: uint16(float64(b) * f),
		A: uint16(a),
	}
}
