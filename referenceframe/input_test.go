package referenceframe

import (
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestInputConversions(t *testing.T) {
	floats := []float64{0.1, -0.2, 0.12, 0, 1, 2, 3}
	test.That(t, InputsToFloats(FloatsToInputs(floats)), test.ShouldResemble, floats)

	a := FloatsToInputs([]float64{0, 0, 0})
	b := FloatsToInputs([]float64{1, 2, 2})
	test.That(t, InputsL2Distance(a, b), test.ShouldAlmostEqual, 9)
	test.That(t, InputsL2Distance(a, b[:2]), test.ShouldEqual, -1)
	// the inputs are not modified
	test.That(t, InputsToFloats(a), test.ShouldResemble, []float64{0, 0, 0})
}

func TestRandomFrameInputs(t *testing.T) {
	m := DefaultPSMModel()
	rSeed := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		test.That(t, m.ValidInputs(RandomFrameInputs(m, rSeed)), test.ShouldBeNil)
		restricted := RestrictedRandomFrameInputs(m, rSeed, 0.5)
		test.That(t, m.ValidInputs(restricted), test.ShouldBeNil)
		for j, lim := range m.DoF() {
			quarter := (lim.Max - lim.Min) / 4
			test.That(t, restricted[j].Value, test.ShouldBeBetweenOrEqual, lim.Min+quarter-1e-12, lim.Max-quarter+1e-12)
		}
	}
	// a nil source is seeded deterministically
	test.That(t, RandomFrameInputs(m, nil), test.ShouldResemble, RandomFrameInputs(m, nil))
}

func TestLimit(t *testing.T) {
	l := Limit{Min: -1, Max: 1}
	test.That(t, l.Contains(1), test.ShouldBeTrue)
	test.That(t, l.Contains(-1.0001), test.ShouldBeFalse)
	test.That(t, limitsAlmostEqual([]Limit{l}, []Limit{{-1, 1 + 1e-7}}), test.ShouldBeTrue)
	test.That(t, limitsAlmostEqual([]Limit{l}, []Limit{{-1, 1.1}}), test.ShouldBeFalse)
	test.That(t, limitsAlmostEqual([]Limit{l}, nil), test.ShouldBeFalse)
}
