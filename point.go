package shaper

import "github.com/gogpu/shaper/textblob"

// Point is a 2D point or vector. The y axis points down.
type Point = textblob.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}
