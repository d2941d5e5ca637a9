package spatialmath

import (
	"github.com/golang/geo/r3"
)

// PoseConfig is the JSON form of a pose: a translation in meters and an orientation vector in degrees.
type PoseConfig struct {
	Translation r3.Vector                 `json:"translation"`
	Orientation *OrientationVectorDegrees `json:"orientation,omitempty"`
}

// NewPoseConfig converts a pose to its JSON form.
func NewPoseConfig(p Pose) *PoseConfig {
	return &PoseConfig{
		Translation: p.Point(),
		Orientation: p.Orientation().OrientationVectorDegrees(),
	}
}

// ParseConfig converts a PoseConfig into a Pose. A missing orientation means no rotation.
func (pc *PoseConfig) ParseConfig() (Pose, error) {
	if pc == nil {
		return nil, newNilPoseError()
	}
	if pc.Orientation == nil {
		return NewPoseFromPoint(pc.Translation), nil
	}
	if err := pc.Orientation.Radians().IsValid(); err != nil {
		return nil, err
	}
	return NewPose(pc.Translation, pc.Orientation), nil
}
