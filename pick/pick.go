// Package pick finds the entities under a world position. Entity bounds are
// kept as static boxes in a chipmunk space so lookups use its spatial index.
package pick

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/blockmap/ecs"
)

// Space holds one axis-aligned box per entity.
type Space struct {
	space  *cp.Space
	shapes map[ecs.EntityId]*cp.Shape
}

// New returns an empty pick space.
func New() *Space {
	return &Space{
		space:  cp.NewSpace(),
		shapes: make(map[ecs.EntityId]*cp.Shape),
	}
}

// Add registers the bounds of id, replacing earlier bounds.
func (s *Space) Add(id ecs.EntityId, minX, minY, maxX, maxY float64) {
	s.Remove(id)

	shape := cp.NewBox2(s.space.StaticBody, cp.BB{L: minX, B: minY, R: maxX, T: maxY}, 0)
	shape.UserData = id
	s.space.AddShape(shape)
	s.shapes[id] = shape
}

// Remove drops the bounds of id.
func (s *Space) Remove(id ecs.EntityId) bool {
	shape, ok := s.shapes[id]
	if !ok {
		return false
	}
	s.space.RemoveShape(shape)
	delete(s.shapes, id)
	return true
}

// Clear removes every box.
func (s *Space) Clear() {
	for id := range s.shapes {
		s.Remove(id)
	}
}

// Len returns the number of registered boxes.
func (s *Space) Len() int {
	return len(s.shapes)
}

// At returns the entity whose box contains (x, y). Points on an edge do not
// count as inside.
func (s *Space) At(x, y float64) (ecs.EntityId, bool) {
	info := s.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	return entityOf(info.Shape)
}

// Hit is the first box crossed by a segment.
type Hit struct {
	Entity ecs.EntityId
	X, Y   float64
	// Alpha is the fraction of the segment travelled before the hit.
	Alpha float64
}

// Segment returns the first box crossed going from (x0, y0) to (x1, y1).
func (s *Space) Segment(x0, y0, x1, y1 float64) (Hit, bool) {
	info := s.space.SegmentQueryFirst(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x1, Y: y1}, 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return Hit{}, false
	}
	id, ok := entityOf(info.Shape)
	if !ok {
		return Hit{}, false
	}
	return Hit{Entity: id, X: info.Point.X, Y: info.Point.Y, Alpha: info.Alpha}, true
}

func entityOf(shape *cp.Shape) (ecs.EntityId, bool) {
	id, ok := shape.UserData.(ecs.EntityId)
	return id, ok
}
