package spatialmath

import "github.com/pkg/errors"

func newOrientationVectorZeroError() error {
	return errors.New("orientation vector has length 0")
}

func newNilPoseError() error {
	return errors.New("pose is not allowed to be nil")
}
