package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind names why a wrist candidate has no kinematic solution. Each kind maps to a fixed negative code.
type ErrorKind int

const (
	// TipBehindBase means the desired tip is not in front of the remote center of motion.
	TipBehindBase ErrorKind = iota + 1
	// WristBehindBase means the wrist point of a candidate is not in front of the remote center of motion.
	WristBehindBase
	// JawFoldedBack means the gripper would have to point back towards the wrist.
	JawFoldedBack
	// WristOffset means no wrist angle places the jaw axis at the wrist link length from the wrist point.
	WristOffset
	// JointLimit means a solved joint is outside its hardware range after wrapping.
	JointLimit
)

var (
	// ErrTipBehindBase is returned when the desired tip has a non-positive z in the base frame.
	ErrTipBehindBase = errors.New("desired tip is behind the remote center of motion")
	// ErrWristBehindBase is returned when the wrist point has a non-positive z in the base frame.
	ErrWristBehindBase = errors.New("wrist point is behind the remote center of motion")
	// ErrJawFoldedBack is returned when the gripper z axis points back along the wrist link.
	ErrJawFoldedBack = errors.New("gripper z axis points back towards the wrist")
	// ErrWristOffset is returned when the wrist link length cannot be met.
	ErrWristOffset = errors.New("no consistent wrist angle for the wrist link length")
	// ErrJointLimit is returned when a joint is out of range.
	ErrJointLimit = errors.New("joint outside of its range")
)

var errorKinds = []ErrorKind{TipBehindBase, WristBehindBase, JawFoldedBack, WristOffset, JointLimit}

// Code returns the legacy negative integer for the kind, -1 through -5.
func (k ErrorKind) Code() int {
	return -int(k)
}

func (k ErrorKind) String() string {
	switch k {
	case TipBehindBase:
		return "TipBehindBase"
	case WristBehindBase:
		return "WristBehindBase"
	case JawFoldedBack:
		return "JawFoldedBack"
	case WristOffset:
		return "WristOffset"
	case JointLimit:
		return "JointLimit"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Err returns the sentinel error of the kind.
func (k ErrorKind) Err() error {
	switch k {
	case TipBehindBase:
		return ErrTipBehindBase
	case WristBehindBase:
		return ErrWristBehindBase
	case JawFoldedBack:
		return ErrJawFoldedBack
	case WristOffset:
		return ErrWristOffset
	case JointLimit:
		return ErrJointLimit
	}
	return errors.Errorf("unknown error kind %d", int(k))
}

// SolveError is the failure of one wrist candidate. It matches its kind's sentinel with errors.Is.
type SolveError struct {
	Kind ErrorKind
	Sign WristSign
	// Joint is the index of the offending joint for JointLimit, -1 otherwise.
	Joint int
	err   error
}

func (e *SolveError) Error() string {
	cause := e.err
	if cause == nil {
		cause = e.Kind.Err()
	}
	return fmt.Sprintf("wrist candidate %s: %s (code %d)", e.Sign, cause, e.Kind.Code())
}

// Unwrap returns the underlying error, which always wraps the kind's sentinel.
func (e *SolveError) Unwrap() error {
	if e.err == nil {
		return e.Kind.Err()
	}
	return e.err
}

// ErrorCode maps an error returned by this package to its legacy code, -1 through -5. It returns 0 for a nil error
// and for errors that are not a kinematic failure.
func ErrorCode(err error) int {
	if kind, ok := errorKind(err); ok {
		return kind.Code()
	}
	return 0
}

func errorKind(err error) (ErrorKind, bool) {
	if err == nil {
		return 0, false
	}
	var solveErr *SolveError
	if errors.As(err, &solveErr) {
		return solveErr.Kind, true
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind.Err()) {
			return kind, true
		}
	}
	return 0, false
}

// newSolveError attributes a stage failure to a candidate. Stage errors wrap one of the sentinels, a joint limit
// failure is already a *SolveError naming the joint. Any other error is not a kinematic failure and is returned
// with false.
func newSolveError(sign WristSign, err error) (*SolveError, bool) {
	var solveErr *SolveError
	if errors.As(err, &solveErr) {
		out := *solveErr
		out.Sign = sign
		return &out, true
	}
	kind, ok := errorKind(err)
	if !ok {
		return nil, false
	}
	return &SolveError{Kind: kind, Sign: sign, Joint: -1, err: err}, true
}
