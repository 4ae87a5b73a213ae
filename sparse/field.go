package sparse

import (
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gradient/field"
)

// Blob motion and opacity.
const (
	wobble      = 0.1
	orbitRadius = 0.3
	orbitSpeed  = 0.4
	minAlpha    = 0.35
)

// Point is a drawable blob.
type Point struct {
	Pos    field.Vec2
	Radius float64
	Color  field.RGB
	Alpha  float64
	Stop   int
	Role   Role
}

// Field is an ECS world of blobs kept in sync with the palette.
type Field struct {
	world    *ecs.World
	mapper   *ecs.Map3[Anchor, Blob, Tint]
	filter   *ecs.Filter3[Anchor, Blob, Tint]
	blobMap  *ecs.Map1[Blob]
	entities []ecs.Entity
	points   []Point
}

// New creates an empty blob field.
func New() *Field {
	world := ecs.NewWorld()
	return &Field{
		world:   world,
		mapper:  ecs.NewMap3[Anchor, Blob, Tint](world),
		filter:  ecs.NewFilter3[Anchor, Blob, Tint](world),
		blobMap: ecs.NewMap1[Blob](world),
	}
}

// Sync makes the world hold exactly one blob per stop.
func (f *Field) Sync(stops int) {
	if stops > field.MaxStops {
		stops = field.MaxStops
	}
	if stops < 0 {
		stops = 0
	}

	for len(f.entities) > stops {
		last := f.entities[len(f.entities)-1]
		f.mapper.Remove(last)
		f.entities = f.entities[:len(f.entities)-1]
	}
	for i := len(f.entities); i < stops; i++ {
		role, radius := roleFor(i)
		anchor := Anchor{X: field.RestPosition.X, Y: field.RestPosition.Y}
		blob := Blob{Stop: i, Role: role, Radius: radius}
		tint := Tint{Alpha: 1}
		f.entities = append(f.entities, f.mapper.NewEntity(&anchor, &blob, &tint))
	}
}

// Len returns the number of blobs.
func (f *Field) Len() int {
	return len(f.entities)
}

// Update moves every anchor for time t and pointer ps, then tints it with
// the field color at the anchor. The stop's share of the blend at that point
// sets the opacity.
func (f *Field) Update(t float64, ps field.PointerState, p *field.Params) {
	f.Sync(p.Stops())

	query := f.filter.Query()
	for query.Next() {
		anchor, blob, tint := query.Get()

		pos := anchorFor(blob.Role, t, ps)
		anchor.X, anchor.Y = pos.X, pos.Y

		s := field.EvaluateDetail(pos, t, ps, p)
		tint.Color = s.Color
		tint.Alpha = minAlpha
		if blob.Stop < s.Stops {
			tint.Alpha += (1 - minAlpha) * s.Weights[blob.Stop]
		}
	}
}

// Points returns the blobs in draw order, largest first so small blobs sit
// on top. The slice is reused by the next call.
func (f *Field) Points() []Point {
	f.points = f.points[:0]
	query := f.filter.Query()
	for query.Next() {
		anchor, blob, tint := query.Get()
		f.points = append(f.points, Point{
			Pos:    field.V(anchor.X, anchor.Y),
			Radius: blob.Radius,
			Color:  tint.Color,
			Alpha:  tint.Alpha,
			Stop:   blob.Stop,
			Role:   blob.Role,
		})
	}
	slices.SortFunc(f.points, func(a, b Point) int {
		switch {
		case a.Radius > b.Radius:
			return -1
		case a.Radius < b.Radius:
			return 1
		}
		return a.Stop - b.Stop
	})
	return f.points
}

// BlobFor returns the blob component of stop i.
func (f *Field) BlobFor(i int) (Blob, bool) {
	if i < 0 || i >= len(f.entities) || !f.world.Alive(f.entities[i]) {
		return Blob{}, false
	}
	return *f.blobMap.Get(f.entities[i]), true
}

func anchorFor(r Role, t float64, ps field.PointerState) field.Vec2 {
	switch r {
	case RoleFollow:
		return ps.Current.Add(field.V(math.Sin(t)*wobble, math.Cos(1.3*t)*wobble))
	case RoleMirror:
		return field.V(1-ps.Current.X, 1-ps.Current.Y)
	case RoleOrbit:
		a := t * orbitSpeed
		return field.V(0.5+math.Cos(a)*orbitRadius, 0.5+math.Sin(a)*orbitRadius)
	}
	return field.RestPosition
}
