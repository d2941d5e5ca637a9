package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/lusu8892/cwru-davinci-kinematics/logging"
	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

var (
	knownJoints = []float64{0.3, -0.2, 0.12, 0.5, 0.4, -0.3, 0}
	homeJoints  = []float64{0, 0, 0.1, 0, 0, 0, 0}
)

// tipPose builds a pose from a point and the columns of its rotation.
func tipPose(t *testing.T, p, x, y, z r3.Vector) spatialmath.Pose {
	t.Helper()
	rm, err := spatialmath.NewRotationMatrixFromAxes(x, y, z)
	test.That(t, err, test.ShouldBeNil)
	return spatialmath.NewPose(p, rm)
}

func forward(t *testing.T, model *referenceframe.DHModel, q []float64) spatialmath.Pose {
	t.Helper()
	pose, err := model.Transform(referenceframe.FloatsToInputs(q))
	test.That(t, err, test.ShouldBeNil)
	return pose
}

func newTestSolver(t *testing.T, model *referenceframe.DHModel, opts ...Option) *AnalyticIK {
	t.Helper()
	ik, err := NewAnalyticIK(model, logging.NewTestLogger(t), opts...)
	test.That(t, err, test.ShouldBeNil)
	return ik
}

// loosenedWristModel opens the three wrist joints to a full turn, which lets both wrist candidates through.
func loosenedWristModel(t *testing.T) *referenceframe.DHModel {
	t.Helper()
	psm := referenceframe.DefaultPSMModel()
	table := psm.Parameters()
	for i := 3; i <= 5; i++ {
		table[i].Min = -math.Pi
		table[i].Max = math.Pi
	}
	model, err := referenceframe.NewDHModel("loose_wrist", table, psm.GripperJawLength(), nil)
	test.That(t, err, test.ShouldBeNil)
	return model
}
