package kinematics

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

// Below this distance between the jaw axis and the remote center of motion the wrist plane is undefined.
const wristSingularityEps = 1e-9

// WristSign selects one of the two wrist configurations that place the jaw axis at the desired pose. The wrist
// link may point from the jaw axis towards the remote center of motion or away from it.
type WristSign int

const (
	// WristSignA has the wrist link pointing away from the remote center of motion, so the wrist point lies between
	// the remote center and the jaw axis.
	WristSignA WristSign = iota
	// WristSignB has the wrist link pointing towards the remote center of motion.
	WristSignB
)

// WristSigns lists both candidates in the order they are tried.
var WristSigns = [2]WristSign{WristSignA, WristSignB}

func (s WristSign) String() string {
	if s == WristSignB {
		return "B"
	}
	return "A"
}

func (s WristSign) direction() float64 {
	if s == WristSignB {
		return -1
	}
	return 1
}

// WristCandidate is one way of reaching the desired tip pose, expressed in the base frame.
type WristCandidate struct {
	Sign WristSign
	// WristPoint is the origin of the wrist bend frame, where the three positioning joints must place the wrist.
	WristPoint r3.Vector
	// WristAxis is the wrist bend axis.
	WristAxis r3.Vector
	// JawPoint is the point on the jaw rotation axis closest to the wrist.
	JawPoint r3.Vector
	// JawAxis is the jaw rotation axis, anti-parallel to the tip x axis.
	JawAxis r3.Vector
	// LinkAxis is the unit vector from WristPoint to JawPoint.
	LinkAxis r3.Vector
}

// ExtractWrist computes both wrist candidates for a desired tip pose. The jaw axis and the jaw point follow from the
// tip pose alone. The wrist link is perpendicular to the jaw axis and, since the wrist bend axis passes through the
// remote center of motion, lies in the plane spanned by the jaw axis and the base origin.
func ExtractWrist(tip spatialmath.Pose, jawLength, wristLink float64) ([2]WristCandidate, error) {
	var candidates [2]WristCandidate
	p := tip.Point()
	if p.Z <= 0 {
		return candidates, errors.Wrapf(ErrTipBehindBase, "tip z %f", p.Z)
	}
	rm := tip.Orientation().RotationMatrix()
	jawAxis := rm.Col(0).Mul(-1)
	jawPoint := p.Sub(rm.Col(2).Mul(jawLength))

	// the component of the jaw point perpendicular to the jaw axis gives the in-plane direction
	radial := jawPoint.Sub(jawAxis.Mul(jawPoint.Dot(jawAxis)))
	if jawAxis.Cross(jawPoint).Norm() < wristSingularityEps {
		return candidates, errors.Wrap(ErrWristOffset, "jaw axis passes through the remote center of motion")
	}
	radial = radial.Normalize()

	for i, sign := range WristSigns {
		link := radial.Mul(sign.direction())
		candidates[i] = WristCandidate{
			Sign:       sign,
			WristPoint: jawPoint.Sub(link.Mul(wristLink)),
			WristAxis:  link.Cross(jawAxis),
			JawPoint:   jawPoint,
			JawAxis:    jawAxis,
			LinkAxis:   link,
		}
	}
	return candidates, nil
}
