package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of 9 row-major values. The matrix must be orthonormal
// with a determinant of one.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	if err := rm.validate(1e-6); err != nil {
		return nil, err
	}
	return rm, nil
}

// NewRotationMatrixFromAxes builds the rotation matrix whose columns are the given x, y, and z axes.
func NewRotationMatrixFromAxes(x, y, z r3.Vector) (*RotationMatrix, error) {
	return NewRotationMatrix([]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	})
}

func (rm *RotationMatrix) validate(tol float64) error {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			want := 0.
			if i == j {
				want = 1.
			}
			if got := rm.Col(i).Dot(rm.Col(j)); math.Abs(got-want) > tol {
				return errors.Errorf("rotation matrix columns %d and %d are not orthonormal (dot %f)", i, j, got)
			}
		}
	}
	if det := rm.Col(0).Cross(rm.Col(1)).Dot(rm.Col(2)); det < 0 {
		return errors.New("rotation matrix is a reflection, determinant is -1")
	}
	return nil
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	return mat3ToQuat(mgl64.Mat3FromRows(
		mgl64.Vec3{rm.mat[0], rm.mat[1], rm.mat[2]},
		mgl64.Vec3{rm.mat[3], rm.mat[4], rm.mat[5]},
		mgl64.Vec3{rm.mat[6], rm.mat[7], rm.mat[8]},
	))
}

// OrientationVectorRadians returns orientation as an orientation vector (in radians).
func (rm *RotationMatrix) OrientationVectorRadians() *OrientationVector {
	return QuatToOV(rm.Quaternion())
}

// OrientationVectorDegrees returns orientation as an orientation vector (in degrees).
func (rm *RotationMatrix) OrientationVectorDegrees() *OrientationVectorDegrees {
	return QuatToOVD(rm.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// At returns the float corresponding to the element at the specified location.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the a 3 element vector corresponding to the specified row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{rm.mat[row*3], rm.mat[row*3+1], rm.mat[row*3+2]}
}

// Col returns the a 3 element vector corresponding to the specified col.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{rm.mat[col], rm.mat[col+3], rm.mat[col+6]}
}

// Mul returns the product rm * v.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{rm.Row(0).Dot(v), rm.Row(1).Dot(v), rm.Row(2).Dot(v)}
}

// TransposeMul returns the product transpose(rm) * v, i.e. v expressed in the rotated frame.
func (rm *RotationMatrix) TransposeMul(v r3.Vector) r3.Vector {
	return r3.Vector{rm.Col(0).Dot(v), rm.Col(1).Dot(v), rm.Col(2).Dot(v)}
}
