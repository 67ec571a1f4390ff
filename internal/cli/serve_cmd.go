package cli

import (
	"os/signal"
	"syscall"

	"github.com/alexanderramin/nutrimind/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := []api.Option{api.WithClock(app.now)}
			if app.Logger != nil {
				opts = append(opts, api.WithLogger(app.Logger))
			}
			return api.New(app.Service, opts...).Run(ctx, addr)
		},
	}

	defaultAddr := app.APIAddr
	if defaultAddr == "" {
		defaultAddr = "127.0.0.1:8787"
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address")
	return cmd
}
