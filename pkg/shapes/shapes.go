// Package shapes provides convenience constructors for common mask
// geometry built on the gds primitives: rectangles, outlines, disks and
// arcs.
package shapes

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceGDS/pkg/gds"
)

// defaultArcPoints keeps generated arcs within the official GDSII
// vertex limit.
const defaultArcPoints = 199

// Rectangle returns a filled rectangle spanning the two corner points.
func Rectangle(layer int, p1, p2 gds.Point, datatype int) *gds.Boundary {
	return gds.NewBoundary([]gds.Point{
		{X: p1.X, Y: p1.Y},
		{X: p2.X, Y: p1.Y},
		{X: p2.X, Y: p2.Y},
		{X: p1.X, Y: p2.Y},
	}, layer, datatype)
}

// Box returns an unfilled rectangular outline of the given stroke width
// spanning the two corner points.
func Box(layer int, p1, p2 gds.Point, width float64, datatype int) *gds.Path {
	return gds.NewPath([]gds.Point{
		{X: p1.X, Y: p1.Y},
		{X: p2.X, Y: p1.Y},
		{X: p2.X, Y: p2.Y},
		{X: p1.X, Y: p2.Y},
		{X: p1.X, Y: p1.Y},
	}, width, layer, datatype)
}

// Disk returns a filled circle, annulus, or section of one. Angles are
// in degrees; equal initial and final angles select the full circle. A
// non-zero innerRadius hollows the disk into an annulus.
func Disk(layer int, center gds.Point, radius, innerRadius, initialAngle, finalAngle float64, datatype int) *gds.Boundary {
	outer := arcPoints(center, radius, initialAngle, finalAngle, defaultArcPoints)
	if innerRadius != 0 {
		inner := arcPoints(center, innerRadius, initialAngle, finalAngle, defaultArcPoints)
		for i := len(inner) - 1; i >= 0; i-- {
			outer = append(outer, inner[i])
		}
	}
	return gds.NewBoundary(outer, layer, datatype)
}

// Circle returns an unfilled circular path, section or arc of the given
// stroke width. Angles are in degrees; equal initial and final angles
// select the full circle.
func Circle(layer int, center gds.Point, radius, width, initialAngle, finalAngle float64, datatype int) *gds.Path {
	return gds.NewPath(arcPoints(center, radius, initialAngle, finalAngle, defaultArcPoints), width, layer, datatype)
}

func arcPoints(center gds.Point, radius, initialAngle, finalAngle float64, n int) []gds.Point {
	if finalAngle == initialAngle {
		finalAngle += 360
	}
	pts := make([]gds.Point, n)
	step := (finalAngle - initialAngle) / float64(n-1)
	for i := range pts {
		sin, cos := math.Sincos((initialAngle + float64(i)*step) * math.Pi / 180)
		pts[i] = gds.Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}
	return pts
}
