package referenceframe

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

func TestDefaultPSMModel(t *testing.T) {
	m := DefaultPSMModel()
	test.That(t, m.Name(), test.ShouldEqual, "davinci_psm")
	test.That(t, len(m.DoF()), test.ShouldEqual, NumJoints)
	test.That(t, m.WristLinkLength(), test.ShouldAlmostEqual, 0.0091)
	test.That(t, m.GripperJawLength(), test.ShouldAlmostEqual, 0.0102)
	test.That(t, m.Parameter(InsertionJoint).Prismatic, test.ShouldBeTrue)
	test.That(t, m.Parameter(InsertionJoint).Offset, test.ShouldAlmostEqual, -0.0156)
	test.That(t, m.DoF()[InsertionJoint], test.ShouldResemble, Limit{Min: 0.01, Max: 0.23})
	test.That(t, m.Parameters()[0].Name, test.ShouldEqual, "outer_yaw")

	// callers cannot mutate the model through the returned table
	params := m.Parameters()
	params[4].A = 1
	test.That(t, m.WristLinkLength(), test.ShouldAlmostEqual, 0.0091)
}

func TestTransformKnownPose(t *testing.T) {
	m := DefaultPSMModel()
	pose, err := m.Transform(FloatsToInputs([]float64{0.3, -0.2, 0.12, 0.5, 0.4, -0.3, 0}))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, pose.Point().X, test.ShouldAlmostEqual, 0.029669413363, 1e-9)
	test.That(t, pose.Point().Y, test.ShouldAlmostEqual, -0.019294033321, 1e-9)
	test.That(t, pose.Point().Z, test.ShouldAlmostEqual, 0.116769600548, 1e-9)

	expected := [][]float64{
		{0.487188317875, 0.859887340338, -0.152450991643},
		{-0.869560222244, 0.493786652427, 0.006305693876},
		{0.080700451159, 0.129493257782, 0.988290915354},
	}
	rm := pose.Orientation().RotationMatrix()
	for i, row := range expected {
		for j, v := range row {
			test.That(t, rm.At(i, j), test.ShouldAlmostEqual, v, 1e-9)
		}
	}

	test.That(t, spatialmath.R3VectorAlmostEqual(
		m.WristPoint(0.3, -0.2, 0.12),
		r3.Vector{0.030237317464103814, -0.020741078135004393, 0.0977490271581904},
		1e-12,
	), test.ShouldBeTrue)
}

func TestTransformHome(t *testing.T) {
	m := DefaultPSMModel()
	home := FloatsToInputs([]float64{0, 0, 0.1, 0, 0, 0, 0})
	pose, err := m.Transform(home)
	test.That(t, err, test.ShouldBeNil)

	// straight insertion along +z, the jaw axis is along +y
	test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), r3.Vector{Z: 0.1037}, 1e-12), test.ShouldBeTrue)
	rm := pose.Orientation().RotationMatrix()
	test.That(t, spatialmath.R3VectorAlmostEqual(rm.Col(0), r3.Vector{Y: -1}, 1e-12), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(rm.Col(2), r3.Vector{Z: 1}, 1e-12), test.ShouldBeTrue)

	chain, err := m.ChainTransforms(home)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(chain), test.ShouldEqual, NumJoints)
	test.That(t, spatialmath.R3VectorAlmostEqual(chain[2].Point(), r3.Vector{Z: 0.0844}, 1e-12), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(chain[4].Point(), r3.Vector{Z: 0.0935}, 1e-12), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(m.WristPoint(0, 0, 0.1), chain[2].Point(), 1e-12), test.ShouldBeTrue)
}

func TestJawDoesNotMoveTip(t *testing.T) {
	m := DefaultPSMModel()
	q := RandomFrameInputs(m, rand.New(rand.NewSource(3)))
	p1, err := m.Transform(q)
	test.That(t, err, test.ShouldBeNil)
	q[6] = Input{q[6].Value + 0.5}
	p2, err := m.Transform(q)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqualEps(p1, p2, 1e-12), test.ShouldBeTrue)
}

func TestChainMatchesTransform(t *testing.T) {
	m := DefaultPSMModel()
	rSeed := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		q := RandomFrameInputs(m, rSeed)
		test.That(t, m.ValidInputs(q), test.ShouldBeNil)
		chain, err := m.ChainTransforms(q)
		test.That(t, err, test.ShouldBeNil)
		tip, err := m.Transform(q)
		test.That(t, err, test.ShouldBeNil)

		// the tip sits one jaw length along z of the last wrist frame
		wrist := chain[5]
		expected := spatialmath.TransformPoint(wrist, r3.Vector{Z: m.GripperJawLength()})
		test.That(t, spatialmath.R3VectorAlmostEqual(tip.Point(), expected, 1e-12), test.ShouldBeTrue)

		// the jaw axis is offset from the wrist point by exactly the wrist link
		offset := chain[4].Point().Sub(chain[2].Point())
		test.That(t, offset.Norm(), test.ShouldAlmostEqual, m.WristLinkLength(), 1e-12)
	}
}

func TestIncorrectInputs(t *testing.T) {
	m := DefaultPSMModel()
	dof := len(m.DoF())

	pose, err := m.Transform(make([]Input, dof+1))
	test.That(t, pose, test.ShouldBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, NewIncorrectDoFError(dof+1, dof).Error())

	chain, err := m.ChainTransforms(make([]Input, dof-1))
	test.That(t, chain, test.ShouldBeNil)
	test.That(t, err, test.ShouldNotBeNil)

	err = m.ValidInputs(FloatsToInputs([]float64{0, 0, 0.1, 0, 0, 0, 0}))
	test.That(t, err, test.ShouldBeNil)
	err = m.ValidInputs(FloatsToInputs([]float64{2, 0, 0.5, 0, 0, 0, 0}))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, OOBErrString)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outer_yaw")
	test.That(t, err.Error(), test.ShouldContainSubstring, "outer_insertion")

	// out of bounds inputs can still be evaluated
	pose, err = m.Transform(FloatsToInputs([]float64{2, 0, 0.5, 0, 0, 0, 0}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose, test.ShouldNotBeNil)

	// continuous joints are wrapped, then held to their limits
	table := m.Parameters()
	table[3].Continuous = true
	table[3].Min, table[3].Max = -0.2, 0.2
	narrow, err := NewDHModel("narrow_roll", table, m.GripperJawLength(), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, narrow.ValidInputs(FloatsToInputs([]float64{0, 0, 0.1, 0.1 + 2*math.Pi, 0, 0, 0})), test.ShouldBeNil)
	err = narrow.ValidInputs(FloatsToInputs([]float64{0, 0, 0.1, 0.5, 0, 0, 0}))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outer_roll")
}

func TestDHTableValidate(t *testing.T) {
	good := DefaultPSMModel().Parameters()
	test.That(t, good.Validate(), test.ShouldBeNil)

	test.That(t, good[:6].Validate(), test.ShouldNotBeNil)

	bad := good.Clone()
	bad[0].Min, bad[0].Max = 1, -1
	bad[3].Prismatic = true
	bad[5].Alpha = math.NaN()
	err := bad.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outer_yaw")
	test.That(t, err.Error(), test.ShouldContainSubstring, "outer_roll")
	test.That(t, err.Error(), test.ShouldContainSubstring, "outer_wrist_yaw")
	// the original is untouched
	test.That(t, good.Validate(), test.ShouldBeNil)

	_, err = NewDHModel("bad", bad, 0.01, nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewDHModel("bad", good, -0.01, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPrismaticTransform(t *testing.T) {
	p := DHParameter{Offset: -0.0156, Prismatic: true}
	pose := p.Transform(0.1)
	test.That(t, pose.Point().Z, test.ShouldAlmostEqual, 0.0844)
	test.That(t, spatialmath.OrientationAlmostEqual(pose.Orientation(), spatialmath.NewZeroOrientation()), test.ShouldBeTrue)

	r := DHParameter{A: 0.0091, Offset: math.Pi / 2}
	pose = r.Transform(0)
	test.That(t, pose.Point().Y, test.ShouldAlmostEqual, 0.0091)
	test.That(t, pose.Point().X, test.ShouldAlmostEqual, 0, 1e-12)
}
