package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

// SolveQ123 finds the two pivot angles and the insertion depth that put the wrist point of the chain at
// wristPoint. The first three joints form a spherical joint at the remote center of motion followed by insertion,
// so the wrist point fixes them uniquely.
func SolveQ123(model ForwardKinematics, wristPoint r3.Vector) ([3]float64, error) {
	var q [3]float64
	if wristPoint.Z <= 0 {
		return q, errors.Wrapf(ErrWristBehindBase, "wrist z %f", wristPoint.Z)
	}

	// express the wrist point in DH frame 0
	w := spatialmath.TransformPoint(spatialmath.PoseInverse(model.BaseFrame()), wristPoint)

	// theta1 is the azimuth of the insertion axis, theta2 - pi/2 its elevation
	theta1 := math.Atan2(w.Y, w.X)
	theta2 := math.Atan2(w.Z, math.Hypot(w.X, w.Y)) + math.Pi/2

	q[0] = theta1 - model.Parameter(0).Offset
	q[1] = theta2 - model.Parameter(1).Offset
	insertion := model.Parameter(referenceframe.InsertionJoint)
	q[2] = w.Norm() - insertion.D - insertion.Offset
	return q, nil
}
