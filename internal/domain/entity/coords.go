package entity

import (
	"fmt"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

type CoordsKind string

const (
	CoordsPoint      CoordsKind = "point"
	CoordsBox        CoordsKind = "box"
	CoordsCandidates CoordsKind = "candidates"
)

// Coords is the location payload of an action: a single point, a bounding
// box given by two corners, or a list of candidate points.
type Coords struct {
	Kind   CoordsKind `json:"kind"`
	Points []Point    `json:"points"`
}

func NewPoint(p Point) *Coords {
	return &Coords{Kind: CoordsPoint, Points: []Point{p}}
}

func NewBox(topLeft, bottomRight Point) *Coords {
	return &Coords{Kind: CoordsBox, Points: []Point{topLeft, bottomRight}}
}

func NewCandidates(points []Point) *Coords {
	return &Coords{Kind: CoordsCandidates, Points: append([]Point(nil), points...)}
}

// Mean averages points per axis. ok is false for an empty slice.
func Mean(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sum Point
	for _, p := range points {
		sum.X += p.X
		sum.Y += p.Y
	}
	n := float64(len(points))
	return Point{X: sum.X / n, Y: sum.Y / n}, true
}

// Resolve returns the single screen position the coords stand for: the point
// itself, the box center, or the mean of the candidates.
func (c *Coords) Resolve() (Point, bool) {
	if c == nil {
		return Point{}, false
	}
	return Mean(c.Points)
}

func (c *Coords) String() string {
	if c == nil {
		return ""
	}
	parts := make([]string, len(c.Points))
	for i, p := range c.Points {
		parts[i] = p.String()
	}
	return string(c.Kind) + "[" + strings.Join(parts, " ") + "]"
}
