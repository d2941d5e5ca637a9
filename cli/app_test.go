package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/lusu8892/cwru-davinci-kinematics/referenceframe"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"psmik"}, args...))
	return out.String(), errOut.String(), err
}

func TestModelCommand(t *testing.T) {
	out, _, err := runApp(t, "model")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `model "davinci_psm"`)
	test.That(t, out, test.ShouldContainSubstring, "gripper jaw length 0.0102 m")
	test.That(t, out, test.ShouldContainSubstring, "outer_insertion")
	test.That(t, out, test.ShouldContainSubstring, "prismatic")
	test.That(t, out, test.ShouldContainSubstring, "0.0091")

	t.Run("from file", func(t *testing.T) {
		data, err := referenceframe.DefaultPSMModel().MarshalJSON()
		test.That(t, err, test.ShouldBeNil)
		path := filepath.Join(t.TempDir(), "psm.json")
		test.That(t, os.WriteFile(path, data, 0o600), test.ShouldBeNil)

		out, _, err := runApp(t, "--model", path, "model")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "outer_wrist_yaw")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runApp(t, "--model", filepath.Join(t.TempDir(), "nope.json"), "model")
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestForwardKinematicsCommand(t *testing.T) {
	out, _, err := runApp(t, "fk", "0", "0", "0.1", "0", "0", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Z:0.103700")
	test.That(t, out, test.ShouldContainSubstring, "Theta:-90.0000")

	out, _, err = runApp(t, "fk", "--chain", "--", "0.3", "-0.2", "0.12", "0.5", "0.4", "-0.3", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "X:0.029669, Y:-0.019294, Z:0.116770")
	test.That(t, out, test.ShouldContainSubstring, "outer_wrist_yaw")

	_, errOut, err := runApp(t, "fk", "0", "0", "0.5", "0", "0", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "Warning")

	_, _, err = runApp(t, "fk", "0", "0", "0.1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 6 or 7 joint values")

	_, _, err = runApp(t, "fk", "0", "0", "x", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint 3")
}

func TestSolveCommand(t *testing.T) {
	out, _, err := runApp(t, "solve", "--z", "0.1037", "--oz", "1", "--theta=-90")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "1 solution(s)")
	test.That(t, out, test.ShouldContainSubstring, "0.100000 m")

	_, errOut, err := runApp(t, "--debug", "solve", "--z", "0.1037", "--theta=-90", "--jaw", "0.2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "wrist candidate rejected")

	out, _, err = runApp(t, "solve", "--z", "0.1037", "--theta=-90", "--current=0,0,0.1,0,0,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "closest to the current joints: solution 1 (wrist A)")

	_, _, err = runApp(t, "solve", "--z", "0.1037", "--theta=-90", "--current=0,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bad current joints")

	_, _, err = runApp(t, "solve", "--z=-0.01")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "code -1")

	_, _, err = runApp(t, "solve", "--x", "0.01")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBatchCommand(t *testing.T) {
	t.Setenv("PSM_TIP_Z", "0.1037")
	path := filepath.Join(t.TempDir(), "poses.json")
	poses := `[
		{"translation": {"x": 0, "y": 0, "z": ${PSM_TIP_Z}}, "orientation": {"x": 0, "y": 0, "z": 1, "th": -90}},
		{"translation": {"x": 0, "y": 0, "z": -0.01}, "orientation": {"x": 0, "y": 0, "z": 1, "th": -90}}
	]`
	test.That(t, os.WriteFile(path, []byte(poses), 0o600), test.ShouldBeNil)

	out, _, err := runApp(t, "batch", "--parallel", "2", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "solved 1 of 2 poses")
	test.That(t, out, test.ShouldContainSubstring, "position error mean")
	test.That(t, out, test.ShouldContainSubstring, "RESIDUAL")
	test.That(t, out, test.ShouldContainSubstring, "-1")

	_, _, err = runApp(t, "batch")
	test.That(t, err, test.ShouldNotBeNil)

	bad := filepath.Join(t.TempDir(), "bad.json")
	test.That(t, os.WriteFile(bad, []byte(`{"translation": {}}`), 0o600), test.ShouldBeNil)
	_, _, err = runApp(t, "batch", bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to parse pose file")
}
