// Package kinematics solves the inverse kinematics of the da Vinci patient side manipulator in closed form.
//
// A desired tip pose is reached by one of two wrist candidates. Each candidate runs through the same stages:
// the wrist is extracted from the tip pose, the three positioning joints place the wrist point, the wrist joints
// orient the jaw, and every joint is fitted to its range. Candidates that survive are checked with forward
// kinematics before they are returned.
package kinematics

import (
	"context"
	"math"
	"runtime"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lusu8892/cwru-davinci-kinematics/logging"
	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
)

// DefaultTolerance is the largest position (meters) and orientation (radians) residual of an accepted solution.
const DefaultTolerance = 1e-6

// ForwardKinematics is what the solver needs from the manipulator model. *referenceframe.DHModel implements it.
type ForwardKinematics interface {
	referenceframe.Frame
	ChainTransforms([]referenceframe.Input) ([]spatialmath.Pose, error)
	WristPoint(q0, q1, q2 float64) r3.Vector
	Parameters() referenceframe.DHTable
	Parameter(joint int) referenceframe.DHParameter
	BaseFrame() spatialmath.Pose
	GripperJawLength() float64
	WristLinkLength() float64
}

// Solution is one joint vector that reaches the desired pose.
type Solution struct {
	Joints []referenceframe.Input
	Sign   WristSign
	// PositionError is the distance in meters between the desired tip and the tip reached by Joints.
	PositionError float64
	// OrientationError is the angle in radians between the desired and the reached tip orientation.
	OrientationError float64
	// Residual is the squared norm of the six element pose delta, meters and radians mixed.
	Residual float64
}

// Result holds the solutions of one solve, in candidate order, and why each rejected candidate failed.
type Result struct {
	Solutions []Solution
	// Failures is indexed by WristSign and is nil for accepted candidates.
	Failures [2]error
}

// Count returns the number of solutions, 0, 1 or 2.
func (r *Result) Count() int {
	return len(r.Solutions)
}

// Solution returns the i'th solution.
func (r *Result) Solution(i int) (Solution, error) {
	if i < 0 || i >= len(r.Solutions) {
		return Solution{}, errors.Errorf("solution %d requested but there are %d", i, len(r.Solutions))
	}
	return r.Solutions[i], nil
}

// Joints returns the joints of the first solution, or nil if there is none.
func (r *Result) Joints() []referenceframe.Input {
	if len(r.Solutions) == 0 {
		return nil
	}
	return r.Solutions[0].Joints
}

// PositionErrors returns the position residual of every solution.
func (r *Result) PositionErrors() []float64 {
	errs := make([]float64, 0, len(r.Solutions))
	for _, s := range r.Solutions {
		errs = append(errs, s.PositionError)
	}
	return errs
}

// JointDistance returns the euclidean distance in joint space between solutions i and j, mixing radians and meters.
func (r *Result) JointDistance(i, j int) (float64, error) {
	a, err := r.Solution(i)
	if err != nil {
		return 0, err
	}
	b, err := r.Solution(j)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(referenceframe.InputsL2Distance(a.Joints, b.Joints)), nil
}

// Closest returns the index of the solution nearest in joint space to the current joint state.
func (r *Result) Closest(current []referenceframe.Input) (int, error) {
	if len(r.Solutions) == 0 {
		return -1, errors.New("no solutions")
	}
	best, bestDist := 0, math.Inf(1)
	for i, s := range r.Solutions {
		d := referenceframe.InputsL2Distance(current, s.Joints)
		if d < 0 {
			return -1, referenceframe.NewIncorrectDoFError(len(current), len(s.Joints))
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// Option configures an AnalyticIK.
type Option func(*AnalyticIK)

// WithJawAngle sets the value placed in the jaw opening joint of every solution.
func WithJawAngle(jaw float64) Option {
	return func(ik *AnalyticIK) {
		ik.jaw = jaw
	}
}

// WithTolerance sets the largest position and orientation residual a solution may have.
func WithTolerance(position, orientation float64) Option {
	return func(ik *AnalyticIK) {
		ik.posTolerance = position
		ik.orientTolerance = orientation
	}
}

// WithParallelism bounds the number of goroutines SolveAll uses.
func WithParallelism(n int) Option {
	return func(ik *AnalyticIK) {
		if n > 0 {
			ik.parallelism = n
		}
	}
}

// AnalyticIK is the closed form inverse kinematics solver. It keeps no state between solves and is safe for
// concurrent use.
type AnalyticIK struct {
	model  ForwardKinematics
	table  referenceframe.DHTable
	logger logging.Logger

	jaw             float64
	posTolerance    float64
	orientTolerance float64
	parallelism     int
	posMetric       Metric
	orientMetric    Metric
	residualMetric  Metric
}

// NewAnalyticIK creates a solver for the given model.
func NewAnalyticIK(model ForwardKinematics, logger logging.Logger, opts ...Option) (*AnalyticIK, error) {
	if model == nil {
		return nil, errors.New("forward kinematics model is required")
	}
	table := model.Parameters()
	if err := table.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid DH table")
	}
	ik := &AnalyticIK{
		model:           model,
		table:           table,
		logger:          logger,
		posTolerance:    DefaultTolerance,
		orientTolerance: DefaultTolerance,
		parallelism:     runtime.GOMAXPROCS(0),
		posMetric:       NewPositionMetric(),
		orientMetric:    NewOrientationMetric(),
		residualMetric:  NewSquaredNormMetric(),
	}
	for _, opt := range opts {
		opt(ik)
	}
	if ik.posTolerance <= 0 || ik.orientTolerance <= 0 {
		return nil, errors.Errorf("tolerances must be positive, got %f and %f", ik.posTolerance, ik.orientTolerance)
	}
	return ik, nil
}

// Model returns the forward kinematics the solver verifies its solutions with.
func (ik *AnalyticIK) Model() ForwardKinematics {
	return ik.model
}

// Solve finds every joint vector that reaches the desired tip pose, given in the base frame. When no candidate
// survives the returned error is the failure of candidate A, and the result still records both failures.
func (ik *AnalyticIK) Solve(desired spatialmath.Pose) (*Result, error) {
	if desired == nil {
		return nil, errors.New("desired pose is nil")
	}
	result := &Result{}
	candidates, err := ExtractWrist(desired, ik.model.GripperJawLength(), ik.model.WristLinkLength())
	if err != nil {
		for _, sign := range WristSigns {
			result.Failures[sign] = ik.reject(sign, err)
		}
		return result, result.Failures[WristSignA]
	}

	for _, candidate := range candidates {
		solution, err := ik.solveCandidate(desired, candidate)
		if err != nil {
			result.Failures[candidate.Sign] = ik.reject(candidate.Sign, err)
			continue
		}
		result.Solutions = append(result.Solutions, solution)
	}
	if len(result.Solutions) == 0 {
		return result, result.Failures[WristSignA]
	}
	return result, nil
}

func (ik *AnalyticIK) solveCandidate(desired spatialmath.Pose, candidate WristCandidate) (Solution, error) {
	q123, err := SolveQ123(ik.model, candidate.WristPoint)
	if err != nil {
		return Solution{}, err
	}
	q, err := SolveQ456(ik.model, q123, candidate, desired, ik.jaw)
	if err != nil {
		return Solution{}, err
	}
	q, err = FitJoints(ik.table, q)
	if err != nil {
		return Solution{}, err
	}

	reached, err := ik.model.Transform(q)
	if err != nil {
		return Solution{}, err
	}
	solution := Solution{
		Joints:           q,
		Sign:             candidate.Sign,
		PositionError:    ik.posMetric.Distance(desired, reached),
		OrientationError: ik.orientMetric.Distance(desired, reached),
		Residual:         ik.residualMetric.Distance(desired, reached),
	}
	if solution.PositionError > ik.posTolerance || solution.OrientationError > ik.orientTolerance {
		return Solution{}, errors.Wrapf(ErrWristOffset, "forward kinematics residual %g m, %g rad",
			solution.PositionError, solution.OrientationError)
	}
	return solution, nil
}

func (ik *AnalyticIK) reject(sign WristSign, err error) error {
	solveErr, ok := newSolveError(sign, err)
	if !ok {
		if ik.logger != nil {
			ik.logger.Errorw("wrist candidate could not be evaluated", "sign", sign.String(), "error", err)
		}
		return errors.Wrapf(err, "wrist candidate %s", sign)
	}
	if ik.logger != nil {
		ik.logger.Debugw("wrist candidate rejected",
			"sign", sign.String(),
			"code", solveErr.Kind.Code(),
			"joint", solveErr.Joint,
			"reason", solveErr.Unwrap().Error(),
		)
	}
	return solveErr
}

// ComputeIKSolution returns the joints of the first solution as raw floats.
func (ik *AnalyticIK) ComputeIKSolution(desired spatialmath.Pose) ([]float64, error) {
	result, err := ik.Solve(desired)
	if err != nil {
		return nil, err
	}
	return referenceframe.InputsToFloats(result.Joints()), nil
}

// SolveAll solves a batch of poses concurrently. The results are in the order of poses. A pose without a solution
// is not an error of the batch, its result records the failures. The context only bounds the batch.
func (ik *AnalyticIK) SolveAll(ctx context.Context, poses []spatialmath.Pose) ([]*Result, error) {
	results := make([]*Result, len(poses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ik.parallelism)
	for i, pose := range poses {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if pose == nil {
				return errors.Errorf("pose %d is nil", i)
			}
			// a pose without a solution keeps its failures in the result
			results[i], _ = ik.Solve(pose)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx is canceled once Wait returns, the caller's context decides whether the batch was cut short
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// JointInfo is the name and range of one joint.
type JointInfo struct {
	Name       string
	Limit      referenceframe.Limit
	Prismatic  bool
	Continuous bool
}

// SolverInfo describes the chain the solver works on.
type SolverInfo struct {
	Model  string
	Joints []JointInfo
}

// SolverInfo returns the joint names and limits of the chain.
func (ik *AnalyticIK) SolverInfo() SolverInfo {
	info := SolverInfo{Model: ik.model.Name()}
	for _, p := range ik.table {
		info.Joints = append(info.Joints, JointInfo{
			Name:       p.Name,
			Limit:      p.Limit(),
			Prismatic:  p.Prismatic,
			Continuous: p.Continuous,
		})
	}
	return info
}
