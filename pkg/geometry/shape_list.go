package geometry

import "github.com/df07/go-diffuse-raytracer/pkg/core"

// ShapeList is an insertion-ordered collection of shapes that is itself a Shape.
// Members may be shared with other lists; none are mutated through it.
type ShapeList struct {
	shapes []Shape
}

// NewShapeList creates a list holding the given shapes in order
func NewShapeList(shapes ...Shape) *ShapeList {
	list := &ShapeList{}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Clear removes all shapes
func (l *ShapeList) Clear() {
	l.shapes = nil
}

// Len returns the number of shapes
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns the members in insertion order
func (l *ShapeList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest hit among all members. Each member is queried with
// the closest t found so far as its upper bound, so only strictly closer hits
// replace the current one and ties go to the earlier member.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
