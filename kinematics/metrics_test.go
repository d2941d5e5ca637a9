package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

func TestMetrics(t *testing.T) {
	test.That(t, SquaredNorm([]float64{1, 2, 2}), test.ShouldEqual, 9.)

	from := spatialmath.NewPoseFromPoint(r3.Vector{1, 2, 3})
	to := spatialmath.NewPose(r3.Vector{1, 2, 4}, &spatialmath.R4AA{Theta: math.Pi / 2, RZ: 1})

	test.That(t, NewPositionMetric().Distance(from, to), test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, NewOrientationMetric().Distance(from, to), test.ShouldAlmostEqual, math.Pi/2, 1e-12)
	test.That(t, NewSquaredNormMetric().Distance(from, to), test.ShouldAlmostEqual, 1+math.Pi*math.Pi/4, 1e-9)
	test.That(t, NewSquaredNormMetric().Distance(to, to), test.ShouldAlmostEqual, 0, 1e-12)

	zMetric := NewBasicMetric(func(a, b spatialmath.Pose) float64 {
		return math.Abs(a.Point().Z - b.Point().Z)
	})
	test.That(t, zMetric.Distance(from, to), test.ShouldAlmostEqual, 1, 1e-12)
}
