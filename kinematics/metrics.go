package kinematics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

// Metric measures how far one pose is from another.
type Metric interface {
	Distance(from, to spatialmath.Pose) float64
}

type flexibleMetric struct {
	f func(spatialmath.Pose, spatialmath.Pose) float64
}

func (m *flexibleMetric) Distance(from, to spatialmath.Pose) float64 {
	return m.f(from, to)
}

// NewBasicMetric wraps a distance function as a Metric.
func NewBasicMetric(f func(spatialmath.Pose, spatialmath.Pose) float64) Metric {
	return &flexibleMetric{f}
}

// NewSquaredNormMetric is the squared norm of the six element pose delta.
func NewSquaredNormMetric() Metric {
	return NewBasicMetric(func(from, to spatialmath.Pose) float64 {
		return SquaredNorm(spatialmath.PoseDelta(from, to))
	})
}

// NewPositionMetric is the euclidean distance in meters between the two poses' points.
func NewPositionMetric() Metric {
	return NewBasicMetric(func(from, to spatialmath.Pose) float64 {
		return from.Point().Distance(to.Point())
	})
}

// NewOrientationMetric is the angle in radians of the rotation between the two poses' orientations.
func NewOrientationMetric() Metric {
	return NewBasicMetric(func(from, to spatialmath.Pose) float64 {
		return spatialmath.OrientationDistance(from.Orientation(), to.Orientation())
	})
}

// SquaredNorm returns the dot product of a vector with itself.
func SquaredNorm(vec []float64) float64 {
	return floats.Dot(vec, vec)
}
