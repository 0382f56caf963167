package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNotInvertible is returned when a transform has a (near) zero determinant
var ErrNotInvertible = errors.New("matrix is not invertible")

// Matrix is a 4x4 row-major affine transform
type Matrix [4][4]float64

// Identity returns the identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix creates a matrix from 16 row-major values
func NewMatrix(values [16]float64) Matrix {
	var m Matrix
	for i, v := range values {
		m[i/4][i%4] = v
	}
	return m
}

// At returns the element at row, col
func (m Matrix) At(row, col int) float64 {
	return m[row][col]
}

// Multiply returns m * other. Applied to a tuple, other acts first.
func (m Matrix) Multiply(other Matrix) Matrix {
	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = m[row][0]*other[0][col] +
				m[row][1]*other[1][col] +
				m[row][2]*other[2][col] +
				m[row][3]*other[3][col]
		}
	}
	return result
}

// MultiplyTuple transforms a tuple by the matrix
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose swaps rows and columns
func (m Matrix) Transpose() Matrix {
	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col][row] = m[row][col]
		}
	}
	return result
}

// dense copies the matrix into a gonum dense matrix
func (m Matrix) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for row := 0; row < 4; row++ {
		data = append(data, m[row][:]...)
	}
	return mat.NewDense(4, 4, data)
}

// Determinant returns the determinant of the matrix
func (m Matrix) Determinant() float64 {
	return mat.Det(m.dense())
}

// Invertible reports whether the determinant is outside Epsilon of zero
func (m Matrix) Invertible() bool {
	return !Equal(m.Determinant(), 0)
}

// Inverse returns the inverse matrix, or ErrNotInvertible when the
// determinant is within Epsilon of zero.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if Equal(det, 0) {
		return Matrix{}, fmt.Errorf("determinant %g: %w", det, ErrNotInvertible)
	}

	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		// A condition warning still yields a usable inverse
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return Matrix{}, fmt.Errorf("%v: %w", err, ErrNotInvertible)
		}
	}

	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = inv.At(row, col)
		}
	}
	return result, nil
}

// Equal compares two matrices element-wise within Epsilon
func (m Matrix) Equal(other Matrix) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.Abs(m[row][col]-other[row][col]) >= Epsilon {
				return false
			}
		}
	}
	return true
}
