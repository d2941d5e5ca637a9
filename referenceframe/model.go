package referenceframe

import (
	"encoding/json"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
	"github.com/lusu8892/cwru-davinci-kinematics/utils"
)

// DHModel is the forward kinematics of the manipulator. It is built once from a validated DH table and is read only
// afterwards, so a single model can be shared by any number of goroutines.
type DHModel struct {
	name      string
	params    DHTable
	base      spatialmath.Pose
	tool      spatialmath.Pose
	jawLength float64
	limits    []Limit
}

// DefaultBaseFrame is the pose of DH frame 0 in the base frame: x0 along +z, y0 along +x and z0 along +y, so the
// instrument is inserted along +z of the base.
func DefaultBaseFrame() spatialmath.Pose {
	rm, err := spatialmath.NewRotationMatrixFromAxes(r3.Vector{Z: 1}, r3.Vector{X: 1}, r3.Vector{Y: 1})
	if err != nil {
		panic(err)
	}
	return spatialmath.NewPoseFromOrientation(rm)
}

// toolFrame is the gripper tip relative to the last wrist frame. The tip x axis is anti-parallel to the jaw
// rotation axis.
func toolFrame(jawLength float64) spatialmath.Pose {
	rm, err := spatialmath.NewRotationMatrixFromAxes(r3.Vector{Y: -1}, r3.Vector{X: 1}, r3.Vector{Z: 1})
	if err != nil {
		panic(err)
	}
	return spatialmath.NewPose(r3.Vector{Z: jawLength}, rm)
}

// NewDHModel creates a model from a DH table. A nil base uses DefaultBaseFrame.
func NewDHModel(name string, params DHTable, jawLength float64, base spatialmath.Pose) (*DHModel, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid DH table")
	}
	if jawLength < 0 {
		return nil, errors.Errorf("gripper jaw length must be non-negative, got %f", jawLength)
	}
	if base == nil {
		base = DefaultBaseFrame()
	}
	params = params.Clone()
	return &DHModel{
		name:      name,
		params:    params,
		base:      base,
		tool:      toolFrame(jawLength),
		jawLength: jawLength,
		limits:    params.Limits(),
	}, nil
}

// Name returns the name of this model.
func (m *DHModel) Name() string {
	return m.name
}

// DoF returns the limits of every joint of the chain.
func (m *DHModel) DoF() []Limit {
	return append([]Limit(nil), m.limits...)
}

// Parameters returns a copy of the DH table.
func (m *DHModel) Parameters() DHTable {
	return m.params.Clone()
}

// Parameter returns the DH row of one joint.
func (m *DHModel) Parameter(joint int) DHParameter {
	return m.params[joint]
}

// BaseFrame returns the pose of DH frame 0 in the base frame.
func (m *DHModel) BaseFrame() spatialmath.Pose {
	return m.base
}

// GripperJawLength is the distance from the jaw rotation axis to the gripper tip.
func (m *DHModel) GripperJawLength() float64 {
	return m.jawLength
}

// WristLinkLength is the offset between the wrist bend axis and the jaw rotation axis.
func (m *DHModel) WristLinkLength() float64 {
	return m.params[4].A
}

// Transform returns the pose of the gripper tip in the base frame. Inputs outside of the joint limits are evaluated
// all the same, use ValidInputs to check them.
func (m *DHModel) Transform(inputs []Input) (spatialmath.Pose, error) {
	if len(inputs) != len(m.params) {
		return nil, NewIncorrectDoFError(len(inputs), len(m.params))
	}
	pose := m.base
	// the jaw opening joint does not move the tip
	for i, p := range m.params[:len(m.params)-1] {
		pose = spatialmath.Compose(pose, p.Transform(inputs[i].Value))
	}
	return spatialmath.Compose(pose, m.tool), nil
}

// ChainTransforms returns the pose of each of the seven joint frames in the base frame, ordered from the base out.
func (m *DHModel) ChainTransforms(inputs []Input) ([]spatialmath.Pose, error) {
	if len(inputs) != len(m.params) {
		return nil, NewIncorrectDoFError(len(inputs), len(m.params))
	}
	poses := make([]spatialmath.Pose, 0, len(m.params))
	pose := m.base
	for i, p := range m.params {
		pose = spatialmath.Compose(pose, p.Transform(inputs[i].Value))
		poses = append(poses, pose)
	}
	return poses, nil
}

// WristPoint returns the origin of the wrist bend frame in the base frame for the three positioning joints. It only
// depends on the first three joints.
func (m *DHModel) WristPoint(q0, q1, q2 float64) r3.Vector {
	pose := m.base
	for i, q := range []float64{q0, q1, q2} {
		pose = spatialmath.Compose(pose, m.params[i].Transform(q))
	}
	return pose.Point()
}

// ValidInputs returns an error describing every input that is outside of its joint limit. Continuous joints are
// wrapped into (-pi, pi] before the check.
func (m *DHModel) ValidInputs(inputs []Input) error {
	if len(inputs) != len(m.params) {
		return NewIncorrectDoFError(len(inputs), len(m.params))
	}
	var errAll error
	for i, p := range m.params {
		v := inputs[i].Value
		if p.Continuous {
			v = utils.WrapToPi(v)
		}
		if !p.Limit().Contains(v) {
			multierr.AppendInto(&errAll, newOOBError(jointName(p, i), inputs[i].Value, p.Limit()))
		}
	}
	return errAll
}

// MarshalJSON serializes the model in the same format ParseModelJSONFile reads.
func (m *DHModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(NewModelConfigJSON(m))
}

// AlmostEquals returns true if the only difference between this model and another is floating point imprecision.
func (m *DHModel) AlmostEquals(other *DHModel) bool {
	if other == nil || m.name != other.name || len(m.params) != len(other.params) {
		return false
	}
	for i, p := range m.params {
		o := other.params[i]
		if p.Prismatic != o.Prismatic || p.Continuous != o.Continuous {
			return false
		}
		for j, v := range []float64{p.A, p.D, p.Alpha, p.Offset} {
			if !utils.Float64AlmostEqual(v, []float64{o.A, o.D, o.Alpha, o.Offset}[j], 1e-8) {
				return false
			}
		}
	}
	return limitsAlmostEqual(m.limits, other.limits) &&
		spatialmath.PoseAlmostEqual(m.base, other.base) &&
		spatialmath.PoseAlmostEqual(m.tool, other.tool)
}

func jointName(p DHParameter, idx int) string {
	if p.Name != "" {
		return p.Name
	}
	return strconv.Itoa(idx)
}
