package core

import "math"

// Vec3 is a heliocentric ecliptic vector. Units are AU unless the caller
// applied a render scale.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Norm()
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v multiplied by k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Distance returns the straight-line distance between two positions.
func Distance(a, b Vec3) float64 {
	return a.DistanceTo(b)
}
