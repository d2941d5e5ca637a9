// Package cli contains all business logic needed by the psmik command.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagModel = "model"
	generalFlagDebug = "debug"

	solveFlagX         = "x"
	solveFlagY         = "y"
	solveFlagZ         = "z"
	solveFlagOX        = "ox"
	solveFlagOY        = "oy"
	solveFlagOZ        = "oz"
	solveFlagTheta     = "theta"
	solveFlagJaw       = "jaw"
	solveFlagTolerance = "tolerance"
	solveFlagCurrent   = "current"

	fkFlagChain = "chain"

	batchFlagParallel = "parallel"
)

var jawFlag = &cli.Float64Flag{
	Name:  solveFlagJaw,
	Usage: "jaw opening angle in radians placed in the last joint of every solution",
}

var app = &cli.App{
	Name:            "psmik",
	Usage:           "closed form kinematics of the da Vinci patient side manipulator",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      generalFlagModel,
			Aliases:   []string{"m"},
			Usage:     "load the DH model from `FILE` instead of the built in PSM table",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:   "model",
			Usage:  "print the DH table of the model",
			Action: ModelAction,
		},
		{
			Name:      "fk",
			Usage:     "print the tip pose reached by a joint vector",
			ArgsUsage: "<q1> <q2> <q3> <q4> <q5> <q6> [q7]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  fkFlagChain,
					Usage: "also print the pose of every joint frame",
				},
			},
			Action: ForwardKinematicsAction,
		},
		{
			Name:  "solve",
			Usage: "solve the joints that reach a tip pose",
			Description: `The pose is a translation in meters and an orientation vector in degrees, both in the base frame.

Example, the home pose of the default PSM:
psmik solve --z 0.1037 --ox 0 --oy 0 --oz 1 --theta=-90`,
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: solveFlagX, Usage: "tip x in meters"},
				&cli.Float64Flag{Name: solveFlagY, Usage: "tip y in meters"},
				&cli.Float64Flag{Name: solveFlagZ, Usage: "tip z in meters", Required: true},
				&cli.Float64Flag{Name: solveFlagOX, Usage: "orientation vector x"},
				&cli.Float64Flag{Name: solveFlagOY, Usage: "orientation vector y"},
				&cli.Float64Flag{Name: solveFlagOZ, Usage: "orientation vector z", Value: 1},
				&cli.Float64Flag{Name: solveFlagTheta, Usage: "orientation vector theta in degrees"},
				jawFlag,
				&cli.Float64Flag{
					Name:  solveFlagTolerance,
					Usage: "largest accepted forward kinematics residual, meters and radians",
					Value: 1e-6,
				},
				&cli.Float64SliceFlag{
					Name:  solveFlagCurrent,
					Usage: "current joint values, comma separated, to pick the closest solution",
				},
			},
			Action: SolveAction,
		},
		{
			Name:  "batch",
			Usage: "solve every pose of a JSON file",
			Description: `The file holds a list of poses:
[{"translation": {"x": 0, "y": 0, "z": 0.1037}, "orientation": {"x": 0, "y": 0, "z": 1, "th": -90}}]`,
			ArgsUsage: "<poses.json>",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  batchFlagParallel,
					Usage: "number of poses to solve in parallel",
					Value: 4,
				},
				jawFlag,
			},
			Action: BatchAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
