package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/hammal/abel/hansenlaw"
	"github.com/hammal/abel/plotting"
)

func newPlotCmd() *cobra.Command {
	var (
		flags     transformFlags
		output    string
		title     string
		transform bool
		row       int
	)

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Plot a profile and its transform, or a half-image heat map",
		Long: `Plot draws the profile in the given row of the input, together with its
Abel transform when --transform is set. With --row -1 a heat map of the
whole half-image (or of its transform) is drawn instead. The output format
follows the extension of --output: png, svg, pdf, eps, jpg or tif.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			cfg := configFromContext(cmd.Context())
			opts, err := flags.options(cmd, cfg.Transform)
			if err != nil {
				return err
			}
			size := plotting.Size{
				Width:  vg.Length(cfg.Plot.WidthInches) * vg.Inch,
				Height: vg.Length(cfg.Plot.HeightInches) * vg.Inch,
			}
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			return runPlot(cmd.Context(), cmd.InOrStdin(), args[0], output, title, row, transform, size, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file")
	cmd.Flags().StringVarP(&title, "title", "t", "", "plot title (default: input file name)")
	cmd.Flags().BoolVar(&transform, "transform", false, "include the Abel transform")
	cmd.Flags().IntVar(&row, "row", 0, "row to plot as a profile, -1 for a heat map")
	return cmd
}

func runPlot(ctx context.Context, stdin io.Reader, input, output, title string, row int, transform bool, size plotting.Size, opts hansenlaw.Options) error {
	logger := loggerFromContext(ctx)

	im, err := readMatrix(stdin, input)
	if err != nil {
		return err
	}
	rows, _ := im.Dims()
	if row >= rows || row < -1 {
		return fmt.Errorf("row %d out of range for %d rows", row, rows)
	}

	var res *mat.Dense
	if transform {
		prog := newProgress(logger)
		if res, err = hansenlaw.Transform(im, opts); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Computed %s transform", opts.Direction))
	}

	dr := opts.Dr
	if row < 0 {
		m := im
		if res != nil {
			m = res
			title = fmt.Sprintf("%s (%s)", title, opts.Direction)
		}
		p, err := plotting.HeatMap(title, m, dr)
		if err != nil {
			return err
		}
		return save(ctx, p, size, output)
	}

	curves := []plotting.Curve{{Name: "input", Dr: dr, Data: im.RawRowView(row)}}
	if res != nil {
		curves = append(curves, plotting.Curve{Name: string(opts.Direction), Dr: dr, Data: res.RawRowView(row)})
	}
	p, err := plotting.Profiles(title, curves...)
	if err != nil {
		return err
	}
	return save(ctx, p, size, output)
}

func save(ctx context.Context, p *plot.Plot, size plotting.Size, fname string) error {
	if err := plotting.Save(p, size, fname); err != nil {
		return fmt.Errorf("saving %s: %w", fname, err)
	}
	loggerFromContext(ctx).Info("Wrote plot", "file", fname, "format", plotting.FormatOf(fname))
	return nil
}
