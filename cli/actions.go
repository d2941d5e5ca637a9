package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/a8m/envsubst"
	"github.com/fatih/color"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/lusu8892/cwru-davinci-kinematics/kinematics"
	"github.com/lusu8892/cwru-davinci-kinematics/logging"
	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
	"github.com/lusu8892/cwru-davinci-kinematics/spatialmath"
	"github.com/lusu8892/cwru-davinci-kinematics/utils"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message with a "Warning: " prefix to the error writer.
func warningf(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: "); err != nil {
		return
	}
	printf(w, format, a...)
}

// newLogger writes to the app's error writer, at debug level only when asked for.
func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("psmik")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if !c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.INFO)
	}
	return logger
}

func loadModel(c *cli.Context) (*referenceframe.DHModel, error) {
	path := c.String(generalFlagModel)
	if path == "" {
		return referenceframe.DefaultPSMModel(), nil
	}
	return referenceframe.ParseModelJSONFile(path, "")
}

func newSolver(c *cli.Context, opts ...kinematics.Option) (*kinematics.AnalyticIK, error) {
	model, err := loadModel(c)
	if err != nil {
		return nil, err
	}
	opts = append(opts, kinematics.WithJawAngle(c.Float64(solveFlagJaw)))
	return kinematics.NewAnalyticIK(model, newLogger(c), opts...)
}

// ModelAction prints the DH table of the model.
func ModelAction(c *cli.Context) error {
	model, err := loadModel(c)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "model %q, gripper jaw length %.4f m", model.Name(), model.GripperJawLength())
	printf(c.App.Writer, "%s", dhTableString(model.Parameters()))
	return nil
}

func dhTableString(params referenceframe.DHTable) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Type", "a", "d", "Alpha", "Offset", "Min", "Max"})
	for i, p := range params {
		kind := "revolute"
		switch {
		case p.Prismatic:
			kind = "prismatic"
		case p.Continuous:
			kind = "continuous"
		}
		t.AppendRow(table.Row{
			i + 1,
			p.Name,
			kind,
			fmt.Sprintf("%.4f", p.A),
			fmt.Sprintf("%.4f", p.D),
			fmt.Sprintf("%.4f", p.Alpha),
			fmt.Sprintf("%.4f", p.Offset),
			fmt.Sprintf("%.4f", p.Min),
			fmt.Sprintf("%.4f", p.Max),
		})
	}
	return t.Render()
}

// ForwardKinematicsAction prints the tip pose reached by the joints given as arguments.
func ForwardKinematicsAction(c *cli.Context) error {
	model, err := loadModel(c)
	if err != nil {
		return err
	}
	args := c.Args().Slice()
	if len(args) != referenceframe.NumJoints && len(args) != referenceframe.NumJoints-1 {
		return errors.Errorf("expected %d or %d joint values, got %d",
			referenceframe.NumJoints-1, referenceframe.NumJoints, len(args))
	}
	q := make([]float64, referenceframe.NumJoints)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return errors.Wrapf(err, "joint %d", i+1)
		}
		q[i] = v
	}
	inputs := referenceframe.FloatsToInputs(q)
	if err := model.ValidInputs(inputs); err != nil {
		warningf(c.App.ErrWriter, "%v", err)
	}

	tip, err := model.Transform(inputs)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", poseString(tip))

	if c.Bool(fkFlagChain) {
		chain, err := model.ChainTransforms(inputs)
		if err != nil {
			return err
		}
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Frame", "Joint", "Translation", "Orientation"})
		for i, pose := range chain {
			tra, ov := pose.Point(), pose.Orientation().OrientationVectorDegrees()
			t.AppendRow(table.Row{
				i + 1,
				model.Parameter(i).Name,
				fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", tra.X, tra.Y, tra.Z),
				fmt.Sprintf("OX:%.3f, OY:%.3f, OZ:%.3f, Theta:%.2f", ov.OX, ov.OY, ov.OZ, ov.Theta),
			})
		}
		printf(c.App.Writer, "%s", t.Render())
	}
	return nil
}

func poseString(pose spatialmath.Pose) string {
	tra, ov := pose.Point(), pose.Orientation().OrientationVectorDegrees()
	return fmt.Sprintf("translation X:%.6f, Y:%.6f, Z:%.6f orientation OX:%.6f, OY:%.6f, OZ:%.6f, Theta:%.4f",
		tra.X, tra.Y, tra.Z, ov.OX, ov.OY, ov.OZ, ov.Theta)
}

// SolveAction solves the pose given by the flags and prints every solution.
func SolveAction(c *cli.Context) error {
	tol := c.Float64(solveFlagTolerance)
	ik, err := newSolver(c, kinematics.WithTolerance(tol, tol))
	if err != nil {
		return err
	}
	pc := &spatialmath.PoseConfig{
		Translation: r3.Vector{X: c.Float64(solveFlagX), Y: c.Float64(solveFlagY), Z: c.Float64(solveFlagZ)},
		Orientation: &spatialmath.OrientationVectorDegrees{
			OX:    c.Float64(solveFlagOX),
			OY:    c.Float64(solveFlagOY),
			OZ:    c.Float64(solveFlagOZ),
			Theta: c.Float64(solveFlagTheta),
		},
	}
	desired, err := pc.ParseConfig()
	if err != nil {
		return err
	}

	result, err := ik.Solve(desired)
	if err != nil {
		return errors.Wrapf(err, "no solution (code %d)", kinematics.ErrorCode(err))
	}
	printf(c.App.Writer, "%d solution(s)", result.Count())
	printf(c.App.Writer, "%s", solutionTableString(ik.SolverInfo(), result.Solutions))
	if result.Count() == 2 {
		dist, err := result.JointDistance(0, 1)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "joint space distance between the solutions %.4f", dist)
	}

	if !c.IsSet(solveFlagCurrent) {
		return nil
	}
	current := c.Float64Slice(solveFlagCurrent)
	if len(current) == referenceframe.NumJoints-1 {
		current = append(current, c.Float64(solveFlagJaw))
	}
	idx, err := result.Closest(referenceframe.FloatsToInputs(current))
	if err != nil {
		return errors.Wrap(err, "bad current joints")
	}
	printf(c.App.Writer, "closest to the current joints: solution %d (wrist %s)", idx+1, result.Solutions[idx].Sign)
	return nil
}

func solutionTableString(info kinematics.SolverInfo, solutions []kinematics.Solution) string {
	t := table.NewWriter()
	header := table.Row{"#", "Wrist"}
	header = append(header, lo.Map(info.Joints, func(j kinematics.JointInfo, _ int) interface{} {
		return j.Name
	})...)
	header = append(header, "Position error", "Orientation error")
	t.AppendHeader(header)
	for i, sol := range solutions {
		row := table.Row{i + 1, sol.Sign.String()}
		for j, in := range sol.Joints {
			if info.Joints[j].Prismatic {
				row = append(row, fmt.Sprintf("%.6f m", in.Value))
				continue
			}
			row = append(row, fmt.Sprintf("%.3f°", utils.RadToDeg(in.Value)))
		}
		row = append(row, fmt.Sprintf("%.2e", sol.PositionError), fmt.Sprintf("%.2e", sol.OrientationError))
		t.AppendRow(row)
	}
	return t.Render()
}

// BatchAction solves every pose of a JSON file concurrently and prints one row per pose.
func BatchAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected the path of a JSON pose file")
	}
	ik, err := newSolver(c, kinematics.WithParallelism(c.Int(batchFlagParallel)))
	if err != nil {
		return err
	}
	poses, err := readPoseFile(c.Args().First())
	if err != nil {
		return err
	}

	results, err := ik.SolveAll(c.Context, poses)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Solutions", "Code", "Joints", "Position error", "Residual"})
	var residuals []float64
	for i, result := range results {
		code := 0
		if result.Count() == 0 {
			code = kinematics.ErrorCode(result.Failures[kinematics.WristSignA])
		} else {
			residuals = append(residuals, result.PositionErrors()...)
		}
		joints, posErr, residual := "", "", ""
		if sol, err := result.Solution(0); err == nil {
			joints = fmt.Sprintf("%.4f", referenceframe.InputsToFloats(sol.Joints))
			posErr = fmt.Sprintf("%.2e", sol.PositionError)
			residual = fmt.Sprintf("%.2e", sol.Residual)
		}
		t.AppendRow(table.Row{i + 1, result.Count(), code, joints, posErr, residual})
	}
	printf(c.App.Writer, "%s", t.Render())

	solved := lo.CountBy(results, func(r *kinematics.Result) bool { return r.Count() > 0 })
	printf(c.App.Writer, "solved %d of %d poses", solved, len(results))
	if len(residuals) > 0 {
		mean, err := stats.Mean(residuals)
		if err != nil {
			return err
		}
		maxErr, err := stats.Max(residuals)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "position error mean %.2e m, max %.2e m", mean, maxErr)
	}
	return nil
}

func readPoseFile(path string) ([]spatialmath.Pose, error) {
	data, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pose file")
	}
	var configs []*spatialmath.PoseConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, errors.Wrap(err, "failed to parse pose file")
	}
	poses := make([]spatialmath.Pose, 0, len(configs))
	for i, pc := range configs {
		pose, err := pc.ParseConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "pose %d", i)
		}
		poses = append(poses, pose)
	}
	return poses, nil
}
