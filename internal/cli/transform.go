package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/hammal/abel/config"
	"github.com/hammal/abel/dataio"
	"github.com/hammal/abel/hansenlaw"
)

// transformFlags are the transform settings that override the [transform]
// configuration section when given.
type transformFlags struct {
	dr        float64
	direction string
	shift     float64
	workers   int
	boundary  string
}

func (f *transformFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.dr, "dr", 1, "sample spacing")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", string(hansenlaw.Inverse), "transform direction: inverse, forward")
	cmd.Flags().Float64Var(&f.shift, "shift", 0, "sub-pixel shift of the driving signal along the columns")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "goroutines to split the rows over (0 means GOMAXPROCS)")
	cmd.Flags().StringVar(&f.boundary, "boundary", "zero", "shift boundary policy: zero, edge")
}

// options merges the changed flags over the configuration section.
func (f *transformFlags) options(cmd *cobra.Command, t config.Transform) (hansenlaw.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("dr") {
		t.Dr = f.dr
	}
	if flags.Changed("direction") {
		t.Direction = f.direction
	}
	if flags.Changed("shift") {
		t.Shift = f.shift
	}
	if flags.Changed("workers") {
		t.Workers = f.workers
	}
	if flags.Changed("boundary") {
		t.Boundary = f.boundary
	}
	if t.Dr < 0 {
		return hansenlaw.Options{}, fmt.Errorf("%w: negative dr %v", hansenlaw.ErrInvalidArgument, t.Dr)
	}
	return t.Options()
}

func newTransformCmd() *cobra.Command {
	var (
		flags  transformFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Abel transform a half-image (CSV, TSV or whitespace separated text)",
		Long: `Transform reads a half-image, one profile per line with the center of
symmetry in the first column, and writes its forward or inverse Abel
transform in the same layout. A file name of "-" reads CSV from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, configFromContext(cmd.Context()).Transform)
			if err != nil {
				return err
			}
			return runTransform(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], output, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, the extension selects the format (default: CSV on stdout)")
	return cmd
}

func runTransform(ctx context.Context, stdin io.Reader, stdout io.Writer, input, output string, opts hansenlaw.Options) error {
	logger := loggerFromContext(ctx)

	im, err := readMatrix(stdin, input)
	if err != nil {
		return err
	}
	rows, cols := im.Dims()
	logger.Debug("read half-image", "file", input, "rows", rows, "cols", cols)

	prog := newProgress(logger)
	res, err := hansenlaw.Transform(im, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %s transform of %dx%d half-image", opts.Direction, rows, cols))

	return writeMatrix(stdout, output, res)
}

func readMatrix(stdin io.Reader, fname string) (*mat.Dense, error) {
	if fname == "-" {
		return dataio.DecodeCSV(stdin)
	}
	return dataio.LoadExt(fname)
}

func writeMatrix(stdout io.Writer, fname string, m mat.Matrix) error {
	if fname == "" || fname == "-" {
		return dataio.EncodeCSV(stdout, m)
	}
	return dataio.SaveExt(fname, m)
}
