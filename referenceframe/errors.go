package referenceframe

import (
	"github.com/pkg/errors"
)

// OOBErrString is a string that all OOB errors should contain, so that they can be checked for distinct from other
// Transform errors.
const OOBErrString = "input out of bounds"

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// NewIncorrectDoFError returns an error indicating that the length of an input slice does not match the DoF of a frame.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match frame DoF, expected %d but got %d", expected, actual)
}

// NewUnsupportedParamTypeError returns an error for a model file that is not expressed with DH parameters.
func NewUnsupportedParamTypeError(paramType string) error {
	return errors.Errorf("unsupported param type: %q, only DH is supported", paramType)
}

func newOOBError(joint string, value float64, limit Limit) error {
	return errors.Errorf("joint %s: %.5f %s [%.5f, %.5f]", joint, value, OOBErrString, limit.Min, limit.Max)
}
