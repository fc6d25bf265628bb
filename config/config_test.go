package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hammal/abel/hansenlaw"
	"github.com/hammal/abel/signal"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.Transform.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dr != 1 || opts.Direction != hansenlaw.Inverse || opts.Shift != 0 {
		t.Errorf("unexpected default options %+v", opts)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[transform]
direction = "forward"
shift = -0.35
dr = 0.5
boundary = "edge"

[server]
addr = "127.0.0.1:9000"
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.MaxBodyBytes != 4<<20 {
		t.Errorf("unexpected server section %+v", cfg.Server)
	}
	if cfg.Plot.WidthInches != 6 {
		t.Errorf("plot defaults lost: %+v", cfg.Plot)
	}
	opts, err := cfg.Transform.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Direction != hansenlaw.Forward || opts.Shift != -0.35 || opts.Dr != 0.5 {
		t.Errorf("unexpected options %+v", opts)
	}
	if s, ok := opts.Shifter.(signal.SplineShifter); !ok || s.Boundary != signal.HoldEdge {
		t.Errorf("unexpected shifter %#v", opts.Shifter)
	}
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"direction": "[transform]\ndirection = \"sideways\"\n",
		"boundary":  "[transform]\nboundary = \"mirror\"\n",
		"dr":        "[transform]\ndr = -1.0\n",
		"unknown":   "[transform]\nradius = 3\n",
		"syntax":    "[transform\n",
		"body":      "[server]\nmax_body_bytes = 0\n",
		"plot":      "[plot]\nwidth_inches = -2.0\n",
	} {
		if _, err := Parse(doc); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
	_, err := Parse("[transform]\ndirection = \"up\"\n")
	if !errors.Is(err, hansenlaw.ErrInvalidArgument) {
		t.Errorf("direction error does not wrap ErrInvalidArgument: %v", err)
	}
	_, err = Parse("[transform]\ndr = -0.5\n")
	if !errors.Is(err, hansenlaw.ErrInvalidArgument) {
		t.Errorf("negative dr error does not wrap ErrInvalidArgument: %v", err)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg != Default() {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
	fname := filepath.Join(t.TempDir(), "abel.toml")
	if err := os.WriteFile(fname, []byte("[plot]\nheight_inches = 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Plot.HeightInches != 3 {
		t.Errorf("height not loaded: %+v", cfg.Plot)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}
