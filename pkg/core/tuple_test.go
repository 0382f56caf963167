package core

import (
	"math"
	"testing"
)

func TestTuple_PointAndVector(t *testing.T) {
	p := Point(4, -4, 3)
	if !p.IsPoint() || p.IsVector() {
		t.Errorf("Expected %v to be a point", p)
	}

	v := Vector(4, -4, 3)
	if !v.IsVector() || v.IsPoint() {
		t.Errorf("Expected %v to be a vector", v)
	}
}

func TestTuple_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		result   Tuple
		expected Tuple
	}{
		{"point plus vector", Point(3, -2, 5).Add(Vector(-2, 3, 1)), Point(1, 1, 6)},
		{"point minus point", Point(3, 2, 1).Subtract(Point(5, 6, 7)), Vector(-2, -4, -6)},
		{"point minus vector", Point(3, 2, 1).Subtract(Vector(5, 6, 7)), Point(-2, -4, -6)},
		{"vector minus vector", Vector(3, 2, 1).Subtract(Vector(5, 6, 7)), Vector(-2, -4, -6)},
		{"negate", NewTuple(1, -2, 3, -4).Negate(), NewTuple(-1, 2, -3, 4)},
		{"multiply", NewTuple(1, -2, 3, -4).Multiply(3.5), NewTuple(3.5, -7, 10.5, -14)},
		{"multiply fraction", NewTuple(1, -2, 3, -4).Multiply(0.5), NewTuple(0.5, -1, 1.5, -2)},
		{"divide", NewTuple(1, -2, 3, -4).Divide(2), NewTuple(0.5, -1, 1.5, -2)},
		{"cross a b", Vector(1, 2, 3).Cross(Vector(2, 3, 4)), Vector(-1, 2, -1)},
		{"cross b a", Vector(2, 3, 4).Cross(Vector(1, 2, 3)), Vector(1, -2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestTuple_MagnitudeAndNormalize(t *testing.T) {
	if m := Vector(1, 2, 3).Magnitude(); !Equal(m, math.Sqrt(14)) {
		t.Errorf("Expected magnitude sqrt(14), got %f", m)
	}

	n := Vector(1, 2, 3).Normalize()
	expected := Vector(1/math.Sqrt(14), 2/math.Sqrt(14), 3/math.Sqrt(14))
	if !n.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, n)
	}
	if !Equal(n.Magnitude(), 1) {
		t.Errorf("Normalized vector should have unit length, got %f", n.Magnitude())
	}

	zero := Vector(0, 0, 0).Normalize()
	if !zero.Equal(Vector(0, 0, 0)) {
		t.Errorf("Normalizing zero vector should return zero, got %v", zero)
	}
}

func TestTuple_Dot(t *testing.T) {
	if d := Vector(1, 2, 3).Dot(Vector(2, 3, 4)); !Equal(d, 20) {
		t.Errorf("Expected dot product 20, got %f", d)
	}
}

func TestTuple_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Tuple
		normal   Tuple
		expected Tuple
	}{
		{"approaching at 45 degrees", Vector(1, -1, 0), Vector(0, 1, 0), Vector(1, 1, 0)},
		{"off a slanted surface", Vector(0, -1, 0), Vector(math.Sqrt2/2, math.Sqrt2/2, 0), Vector(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Reflect(tt.normal)
			if !result.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
