package kinematics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

const (
	// Slack on the jaw direction test so that a gripper exactly perpendicular to the wrist link is accepted.
	jawFoldTolerance = 1e-9
	// Allowed mismatch between the wrist link length and the distance from the jaw axis to the solved wrist point.
	wristLinkTolerance = 1e-6
)

// SolveQ456 solves the wrist roll, wrist pitch and wrist yaw joints for one candidate, given the positioning joints
// q123 that place its wrist point. The jaw opening joint is set to jaw. The returned joints are not yet fitted to
// their limits.
func SolveQ456(
	model ForwardKinematics,
	q123 [3]float64,
	candidate WristCandidate,
	desired spatialmath.Pose,
	jaw float64,
) ([]referenceframe.Input, error) {
	rm := desired.Orientation().RotationMatrix()
	gripperZ := rm.Col(2)
	z5 := candidate.JawAxis
	x5 := candidate.LinkAxis

	// projection of the gripper z axis on the link from the jaw point back to the wrist point
	if proj := -gripperZ.Dot(x5); proj > jawFoldTolerance {
		return nil, errors.Wrapf(ErrJawFoldedBack, "projection %f", proj)
	}

	// the jaw axis must sit exactly one wrist link away from where the positioning joints put the wrist
	wrist := model.WristPoint(q123[0], q123[1], q123[2])
	offset := z5.Cross(candidate.JawPoint.Sub(wrist)).Norm()
	if math.Abs(offset-model.WristLinkLength()) >= wristLinkTolerance {
		return nil, errors.Wrapf(ErrWristOffset, "jaw axis is %f from the wrist point, wrist link is %f",
			offset, model.WristLinkLength())
	}

	q := []referenceframe.Input{{q123[0]}, {q123[1]}, {q123[2]}, {0}, {0}, {0}, {0}}
	chain, err := model.ChainTransforms(q)
	if err != nil {
		return nil, err
	}
	frame3 := chain[2].Orientation().RotationMatrix()
	x3, y3, z3 := frame3.Col(0), frame3.Col(1), frame3.Col(2)

	z4 := candidate.WristAxis
	theta4 := math.Atan2(z4.Dot(x3), -z4.Dot(y3))
	x4 := x3.Mul(math.Cos(theta4)).Add(y3.Mul(math.Sin(theta4)))
	y4 := z3

	theta5 := math.Atan2(x5.Dot(y4), x5.Dot(x4))

	y5 := z5.Cross(x5)
	theta6 := math.Atan2(gripperZ.Dot(x5), -gripperZ.Dot(y5))

	q[3].Value = theta4 - model.Parameter(3).Offset
	q[4].Value = theta5 - model.Parameter(4).Offset
	q[5].Value = theta6 - model.Parameter(5).Offset
	q[6].Value = jaw
	return q, nil
}
