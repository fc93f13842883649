// Package object holds the game entities: toys, their lifecycle manager and
// the player-controlled swimmer.
package object

import "github.com/tomz197/toycatch/internal/input"

// Intent is an alias for the input package's held movement direction.
type Intent = input.Intent

// Point is a position on the playfield.
type Point struct {
	X, Y float64
}

// Bounds is the playfield size. The origin is the top-left corner.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the playfield.
func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}
