package cli

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammal/abel/dataio"
	"github.com/hammal/abel/hansenlaw"
)

// execute runs the command line args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("dev", "", "")

	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"abel 1.0.0", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output %q lacks %q", out, want)
		}
	}
}

func TestTransformCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("1,3\n0.5,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "out.tsv")

	_, _, err := execute(t, "transform", input, "-d", "forward", "-o", output)
	if err != nil {
		t.Fatal(err)
	}
	got, err := dataio.LoadExt(output)
	if err != nil {
		t.Fatal(err)
	}
	if r, c := got.Dims(); r != 2 || c != 2 {
		t.Fatalf("output is %dx%d, want 2x2", r, c)
	}
	if v := got.At(0, 0); math.Abs(v-3.4597731081046614) > 1e-9 {
		t.Errorf("forward [1 3] = %v at column 0", v)
	}
	if got.At(0, 1) != 0 || got.At(1, 1) != 0 {
		t.Error("edge column is not zero")
	}
}

func TestTransformStdout(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(input, []byte("2,2,2,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "transform", input)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "0,0,0,0" {
		t.Errorf("inverse of constant = %q", out)
	}
}

func TestTransformConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "abel.toml")
	if err := os.WriteFile(cfgFile, []byte("[transform]\ndirection = \"forward\"\ndr = 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("0.5,1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		args []string
		dr   float64
	}{
		{[]string{"--config", cfgFile, "transform", input}, 0.5},
		// the flag overrides the file
		{[]string{"--config", cfgFile, "transform", input, "--dr", "1"}, 1},
	} {
		out, _, err := execute(t, tt.args...)
		if err != nil {
			t.Fatal(err)
		}
		got, err := dataio.DecodeCSV(strings.NewReader(out))
		if err != nil {
			t.Fatal(err)
		}
		want, err := hansenlaw.TransformProfile([]float64{0.5, 1, 2}, hansenlaw.Options{Dr: tt.dr, Direction: hansenlaw.Forward})
		if err != nil {
			t.Fatal(err)
		}
		for col, w := range want {
			if math.Abs(got.At(0, col)-w) > 1e-12 {
				t.Errorf("dr %v: column %d = %v, want %v", tt.dr, col, got.At(0, col), w)
			}
		}
	}
}

func TestTransformErrors(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(input, []byte("1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := execute(t, "transform", input, "-d", "sideways")
	if !errors.Is(err, hansenlaw.ErrInvalidArgument) {
		t.Errorf("unknown direction: got %v", err)
	}
	if _, _, err := execute(t, "transform", input, "--dr", "-1"); !errors.Is(err, hansenlaw.ErrInvalidArgument) {
		t.Errorf("negative dr: got %v", err)
	}
	nan := filepath.Join(t.TempDir(), "nan.csv")
	if err := os.WriteFile(nan, []byte("1,NaN,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "transform", nan); !errors.Is(err, hansenlaw.ErrInvalidArgument) {
		t.Errorf("NaN sample: got %v", err)
	}
	if _, _, err := execute(t, "transform", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("missing input accepted")
	}
	if _, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "transform", input); err == nil {
		t.Error("missing config accepted")
	}
}

func TestSynthCommand(t *testing.T) {
	out, _, err := execute(t, "synth", "-k", "projection", "--sigma", "2", "-n", "3", "--rows", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != lines[1] {
		t.Fatalf("unexpected synth output %q", out)
	}
	if !strings.HasPrefix(lines[0], "3.5449077") {
		t.Errorf("projection at 0 should be 2 sqrt(pi), got %q", lines[0])
	}

	if _, _, err := execute(t, "synth", "-k", "triangle"); err == nil {
		t.Error("unknown kind accepted")
	}
	if _, _, err := execute(t, "synth", "--sigma", "0"); err == nil {
		t.Error("zero sigma accepted")
	}
}

func TestSynthTransformRoundTrip(t *testing.T) {
	dir := t.TempDir()
	proj := filepath.Join(dir, "proj.csv")
	src := filepath.Join(dir, "src.csv")
	if _, _, err := execute(t, "synth", "-k", "quadrature", "--sigma", "100", "-n", "501", "-o", proj); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "transform", proj, "-o", src); err != nil {
		t.Fatal(err)
	}
	got, err := dataio.LoadExt(src)
	if err != nil {
		t.Fatal(err)
	}
	for col := 0; col < 499; col++ {
		r := float64(col)
		want := math.Exp(-r * r / 1e4)
		if d := math.Abs(got.At(0, col) - want); d > 0.08 {
			t.Fatalf("inverse at r=%v is %v, want %v", r, got.At(0, col), want)
		}
	}
}

func TestPlotCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if _, _, err := execute(t, "synth", "--sigma", "10", "-n", "40", "--rows", "3", "-o", input); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{"plot", input, "-o", filepath.Join(dir, "profile.svg"), "--transform", "-d", "forward"},
		{"plot", input, "-o", filepath.Join(dir, "map.png"), "--row=-1"},
	} {
		if _, _, err := execute(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		info, err := os.Stat(args[3])
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", args[3], err)
		}
	}
	if _, _, err := execute(t, "plot", input); err == nil {
		t.Error("plot without output accepted")
	}
	if _, _, err := execute(t, "plot", input, "-o", filepath.Join(dir, "x.svg"), "--row", "3"); err == nil {
		t.Error("row out of range accepted")
	}
}
