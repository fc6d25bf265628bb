package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/hammal/abel/signal"
)

const (
	kindSource     = "source"     // exp(-r^2/sigma^2)
	kindProjection = "projection" // analytic forward transform of the source
	kindQuadrature = "quadrature" // numerical forward transform of the source
)

type synthOpts struct {
	kind   string
	sigma  float64
	n      int
	rows   int
	dr     float64
	points int
	output string
}

func newSynthCmd() *cobra.Command {
	opts := synthOpts{
		kind:   kindSource,
		sigma:  100,
		n:      501,
		rows:   1,
		dr:     1,
		points: 64,
	}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a sampled Gaussian source or its projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return runSynth(cmd.Context(), cmd.OutOrStdout(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, "profile: source, projection, quadrature")
	cmd.Flags().Float64Var(&opts.sigma, "sigma", opts.sigma, "Gaussian width")
	cmd.Flags().IntVarP(&opts.n, "samples", "n", opts.n, "samples per profile")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "number of identical rows")
	cmd.Flags().Float64Var(&opts.dr, "dr", opts.dr, "sample spacing")
	cmd.Flags().IntVar(&opts.points, "points", opts.points, "quadrature points per sample")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: CSV on stdout)")
	return cmd
}

func (o *synthOpts) validate() error {
	switch o.kind {
	case kindSource, kindProjection, kindQuadrature:
	default:
		return fmt.Errorf("invalid kind %q: must be source, projection or quadrature", o.kind)
	}
	if o.sigma <= 0 || o.dr <= 0 {
		return fmt.Errorf("sigma and dr must be positive, got %v and %v", o.sigma, o.dr)
	}
	if o.n < 1 || o.rows < 1 || o.points < 1 {
		return errors.New("samples, rows and points must be at least 1")
	}
	return nil
}

// profile samples the requested curve of the Gaussian pair.
func (o *synthOpts) profile() []float64 {
	g := signal.Gaussian{Sigma: o.sigma}
	switch o.kind {
	case kindProjection:
		return signal.Sample(g.Projection, o.n, o.dr)
	case kindQuadrature:
		// the source is below 1e-20 beyond 7 sigma
		return signal.ProjectProfile(g.Source, o.n, o.dr, 7*o.sigma, o.points)
	default:
		return signal.Sample(g.Source, o.n, o.dr)
	}
}

func runSynth(ctx context.Context, stdout io.Writer, opts *synthOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p := opts.profile()
	im := mat.NewDense(opts.rows, opts.n, nil)
	for row := 0; row < opts.rows; row++ {
		im.SetRow(row, p)
	}
	prog.done(fmt.Sprintf("Sampled %d %s rows of %d", opts.rows, opts.kind, opts.n))

	return writeMatrix(stdout, opts.output, im)
}
