package vmath

import "math"

// Number constrains Coord components
type Number interface {
	~int | ~int64 | ~float64
}

// Coord is a 2D vector; Vec and Cell are the float and grid instantiations
type Coord[T Number] struct {
	X, Y T
}

// Vec is a continuous position, velocity or acceleration
type Vec = Coord[float64]

// Cell is a grid coordinate
type Cell = Coord[int]

// V builds a Vec
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (a Coord[T]) Add(b Coord[T]) Coord[T] {
	return Coord[T]{a.X + b.X, a.Y + b.Y}
}

func (a Coord[T]) Sub(b Coord[T]) Coord[T] {
	return Coord[T]{a.X - b.X, a.Y - b.Y}
}

// Mul is the component-wise product
func (a Coord[T]) Mul(b Coord[T]) Coord[T] {
	return Coord[T]{a.X * b.X, a.Y * b.Y}
}

// Div is the component-wise quotient
func (a Coord[T]) Div(b Coord[T]) Coord[T] {
	return Coord[T]{a.X / b.X, a.Y / b.Y}
}

func (a Coord[T]) Scale(s T) Coord[T] {
	return Coord[T]{a.X * s, a.Y * s}
}

func (a Coord[T]) DivScalar(s T) Coord[T] {
	return Coord[T]{a.X / s, a.Y / s}
}

func (a Coord[T]) Neg() Coord[T] {
	return Coord[T]{-a.X, -a.Y}
}

func (a Coord[T]) Dot(b Coord[T]) T {
	return a.X*b.X + a.Y*b.Y
}

// Det is the 2D cross product a.X*b.Y - a.Y*b.X
// Positive when b is counter-clockwise from a in a y-up frame
func (a Coord[T]) Det(b Coord[T]) T {
	return a.X*b.Y - a.Y*b.X
}

func (a Coord[T]) SquareLength() T {
	return a.X*a.X + a.Y*a.Y
}

func (a Coord[T]) Length() float64 {
	return math.Sqrt(float64(a.SquareLength()))
}

// ComplexProduct multiplies a and b as complex numbers (rotation and scaling)
func (a Coord[T]) ComplexProduct(b Coord[T]) Coord[T] {
	return Coord[T]{a.X*b.X - a.Y*b.Y, a.X*b.Y + a.Y*b.X}
}

// Conj mirrors across the x axis
func (a Coord[T]) Conj() Coord[T] {
	return Coord[T]{a.X, -a.Y}
}

// Perp rotates a quarter turn, (x, y) -> (-y, x)
func (a Coord[T]) Perp() Coord[T] {
	return Coord[T]{-a.Y, a.X}
}

// Min is the component-wise minimum
func (a Coord[T]) Min(b Coord[T]) Coord[T] {
	return Coord[T]{min(a.X, b.X), min(a.Y, b.Y)}
}

// Max is the component-wise maximum
func (a Coord[T]) Max(b Coord[T]) Coord[T] {
	return Coord[T]{max(a.X, b.X), max(a.Y, b.Y)}
}

// Normalize returns the unit vector, zero-safe
func Normalize(v Vec) Vec {
	l := v.Length()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// CellOf returns floor(v/size) per component
func CellOf(v Vec, size float64) Cell {
	return Cell{int(math.Floor(v.X / size)), int(math.Floor(v.Y / size))}
}

// Reflect mirrors v about the line whose normal is n (n need not be unit)
// Axis-aligned normals reflect exactly
func Reflect(v, n Vec) Vec {
	n = Normalize(n)
	if n == (Vec{}) {
		return v
	}
	return v.Sub(n.Scale(2 * v.Dot(n)))
}
