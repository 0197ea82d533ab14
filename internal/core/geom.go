// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps a y-up world rectangle of WorldW x WorldH units onto the
// cells of Area. World y = 0 lands on the bottom row of Area.
type Viewport struct {
	WorldW, WorldH float64
	Area           Rect
}

// ToCell converts world coordinates to a screen cell.
func (v Viewport) ToCell(x, y float64) (int, int) {
	if v.WorldW <= 0 || v.WorldH <= 0 || v.Area.W <= 0 || v.Area.H <= 0 {
		return v.Area.X, v.Area.Y
	}
	cx := int(math.Floor(x / v.WorldW * float64(v.Area.W)))
	cy := int(math.Floor((v.WorldH - y) / v.WorldH * float64(v.Area.H)))
	return v.Area.X + Clamp(cx, 0, v.Area.W-1), v.Area.Y + Clamp(cy, 0, v.Area.H-1)
}

// Scale returns the number of cells per world unit on each axis.
func (v Viewport) Scale() (float64, float64) {
	if v.WorldW <= 0 || v.WorldH <= 0 {
		return 0, 0
	}
	return float64(v.Area.W) / v.WorldW, float64(v.Area.H) / v.WorldH
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
