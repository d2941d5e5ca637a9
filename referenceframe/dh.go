package referenceframe

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

// NumJoints is the number of joints in the manipulator chain: three positioning joints, three wrist joints and the
// jaw opening.
const NumJoints = 7

// InsertionJoint is the index of the prismatic instrument insertion joint.
const InsertionJoint = 2

// DHParameter describes one link of the chain with standard Denavit-Hartenberg parameters, the joint's offset from
// the DH angle (or length, for a prismatic joint) and its hardware range.
type DHParameter struct {
	Name   string
	A      float64
	D      float64
	Alpha  float64
	Offset float64
	Min    float64
	Max    float64
	// Prismatic joints move along z, their input is added to D instead of theta.
	Prismatic bool
	// Continuous joints rotate without end stops, their values are compared to the limits after wrapping into (-pi, pi].
	Continuous bool
}

// Limit returns the hardware range of the joint.
func (p DHParameter) Limit() Limit {
	return Limit{Min: p.Min, Max: p.Max}
}

// Transform returns the pose of this link's frame relative to the previous one for the given joint value.
func (p DHParameter) Transform(q float64) spatialmath.Pose {
	if p.Prismatic {
		return spatialmath.NewPoseFromDH(p.A, p.D+q+p.Offset, p.Alpha, 0)
	}
	return spatialmath.NewPoseFromDH(p.A, p.D, p.Alpha, q+p.Offset)
}

// DHTable is the ordered parameter table of the chain, from the base to the jaw.
type DHTable []DHParameter

// Validate checks that the table describes the seven joint chain this package supports. Every problem found is
// reported.
func (t DHTable) Validate() error {
	if len(t) != NumJoints {
		return errors.Errorf("DH table needs exactly %d rows, got %d", NumJoints, len(t))
	}
	var err error
	for i, p := range t {
		name := jointName(p, i)
		for _, v := range []float64{p.A, p.D, p.Alpha, p.Offset, p.Min, p.Max} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				multierr.AppendInto(&err, errors.Errorf("joint %s has a non finite parameter", name))
				break
			}
		}
		if p.Min > p.Max {
			multierr.AppendInto(&err, errors.Errorf("joint %s has min %f greater than max %f", name, p.Min, p.Max))
		}
		if p.Prismatic != (i == InsertionJoint) {
			multierr.AppendInto(&err, errors.Errorf("joint %s: only joint %d may be prismatic", name, InsertionJoint))
		}
		if p.Prismatic && p.Continuous {
			multierr.AppendInto(&err, errors.Errorf("joint %s cannot be both prismatic and continuous", name))
		}
	}
	return err
}

// Limits returns the hardware range of every joint.
func (t DHTable) Limits() []Limit {
	limits := make([]Limit, 0, len(t))
	for _, p := range t {
		limits = append(limits, p.Limit())
	}
	return limits
}

// Clone returns a copy of the table that shares no memory with t.
func (t DHTable) Clone() DHTable {
	return append(DHTable(nil), t...)
}
