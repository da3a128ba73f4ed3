package gds

import "math"

// Point is a 2D coordinate or vector in user units.
type Point struct {
	X, Y float64
}

// Add returns the vector sum p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Uniform returns a scale factor that is equal in x and y.
func Uniform(k float64) Point {
	return Point{X: k, Y: k}
}

// COM is a sentinel transform center. Passing it to Rotate, Scale or
// Reflect selects the arithmetic mean of the element's points, computed
// fresh at each call.
var COM = Point{X: math.NaN(), Y: math.NaN()}

func isCOM(p Point) bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pts)))
}

// rotatePoint rotates p about center by the given sine and cosine.
func rotatePoint(p, center Point, sin, cos float64) Point {
	d := p.Sub(center)
	return Point{
		X: d.X*cos - d.Y*sin,
		Y: d.X*sin + d.Y*cos,
	}.Add(center)
}
