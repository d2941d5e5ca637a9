package kinematics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
	"github.com/lusu8892/cwru-davinci-kinematics/utils"
)

// Joint values this close outside of a limit are treated as on the limit.
const limitEps = 1e-9

// FitJoint moves a solved joint value into the range of its joint. A value already in range is returned unchanged.
// Otherwise revolute joints are shifted by whole turns, continuous joints are wrapped into (-pi, pi] first.
// Prismatic joints are only range checked. It returns false if the joint cannot reach the value.
func FitJoint(param referenceframe.DHParameter, value float64) (float64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value, false
	}
	if !param.Prismatic && !withinLimit(param, value) {
		if param.Continuous {
			value = utils.WrapToPi(value)
		}
		if !withinLimit(param, value) {
			value = utils.WrapFrom(value, param.Min-limitEps)
		}
	}
	if !withinLimit(param, value) {
		return value, false
	}
	return math.Min(math.Max(value, param.Min), param.Max), true
}

func withinLimit(param referenceframe.DHParameter, value float64) bool {
	return value >= param.Min-limitEps && value <= param.Max+limitEps
}

// FitJoints fits every joint of q to the table and returns the fitted copy. The first joint that does not fit stops
// the fit with a JointLimit error naming it.
func FitJoints(table referenceframe.DHTable, q []referenceframe.Input) ([]referenceframe.Input, error) {
	if len(q) != len(table) {
		return nil, referenceframe.NewIncorrectDoFError(len(q), len(table))
	}
	fitted := make([]referenceframe.Input, len(q))
	for i, param := range table {
		v, ok := FitJoint(param, q[i].Value)
		if !ok {
			return nil, &SolveError{
				Kind:  JointLimit,
				Joint: i,
				err: errors.Wrapf(ErrJointLimit, "joint %d (%s) value %f outside [%f, %f]",
					i, param.Name, q[i].Value, param.Min, param.Max),
			}
		}
		fitted[i] = referenceframe.Input{Value: v}
	}
	return fitted, nil
}
