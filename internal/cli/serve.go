package cli

import (
	"github.com/spf13/cobra"

	"github.com/hammal/abel/server"
)

func newServeCmd() *cobra.Command {
	var (
		flags transformFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform over HTTP",
		Long: `Serve answers POST /v1/transform with the Abel transform of the profile
or half-image in the JSON body. The transform flags set the defaults for
fields a request leaves out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			opts, err := flags.options(cmd, cfg.Transform)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			logger := loggerFromContext(ctx)
			logger.Debug("transform defaults", "direction", opts.Direction, "dr", opts.Dr, "shift", opts.Shift)
			s := server.New(opts, cfg.Server.MaxBodyBytes, logger)
			return s.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
