// Package referenceframe describes the kinematic chain of the manipulator: joint inputs and their limits, the
// Denavit-Hartenberg parameter table, and the forward kinematics that maps joint inputs to frames in space.
package referenceframe

import (
	"math"
	"math/rand"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
	"github.com/lusu8892/cwru-davinci-kinematics/utils"
)

// Limit represents the limits of motion for a joint.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains returns whether value lies within the limit, inclusive of both ends.
func (l Limit) Contains(value float64) bool {
	return value >= l.Min && value <= l.Max
}

func limitsAlmostEqual(a, b []Limit) bool {
	if len(a) != len(b) {
		return false
	}

	const epsilon = 1e-5
	for idx, x := range a {
		if !utils.Float64AlmostEqual(x.Min, b[idx].Min, epsilon) ||
			!utils.Float64AlmostEqual(x.Max, b[idx].Max, epsilon) {
			return false
		}
	}

	return true
}

// Frame represents a reference frame that moves with a number of inputs, e.g. a manipulator.
type Frame interface {
	// Name returns the name of the frame.
	Name() string

	// Transform is the pose (rotation and translation) that goes FROM the frame's tip TO its base.
	Transform([]Input) (spatialmath.Pose, error)

	// DoF will return a slice with length equal to the number of joints/degrees of freedom.
	// Each element describes the min and max movement limit of that joint/degree of freedom.
	DoF() []Limit
}

// RestrictedRandomFrameInputs will produce a list of valid, in-bounds inputs for the frame, restricting the range to
// `lim` percent of the limits around their midpoint.
func RestrictedRandomFrameInputs(m Frame, rSeed *rand.Rand, lim float64) []Input {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	dof := m.DoF()
	pos := make([]Input, 0, len(dof))
	for _, limit := range dof {
		l, u := finiteLimit(limit)
		mid := (l + u) / 2
		half := lim * (u - l) / 2
		pos = append(pos, Input{mid + (2*rSeed.Float64()-1)*half})
	}
	return pos
}

// RandomFrameInputs will produce a list of valid, in-bounds inputs for the frame.
func RandomFrameInputs(m Frame, rSeed *rand.Rand) []Input {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	dof := m.DoF()
	pos := make([]Input, 0, len(dof))
	for _, limit := range dof {
		l, u := finiteLimit(limit)
		pos = append(pos, Input{rSeed.Float64()*(u-l) + l})
	}
	return pos
}

// Default to [-2pi, 2pi] as range if limits are infinite.
func finiteLimit(limit Limit) (float64, float64) {
	l, u := limit.Min, limit.Max
	if math.IsInf(l, -1) {
		l = -2 * math.Pi
	}
	if math.IsInf(u, 1) {
		u = 2 * math.Pi
	}
	return l, u
}
