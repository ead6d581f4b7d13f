package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/stoich/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr  string
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Long: `Start an HTTP server exposing formula validation, weighing and the formula
catalog as a JSON API.

Routes:
  GET  /healthz
  GET  /elements
  GET  /elements/{symbol}
  POST /weigh              {"formula": "H2O"}
  POST /normalize          {"formula": "HH"}
  GET  /molecules
  POST /molecules          {"formula": "H2O", "normalize": false}
  GET  /molecules/{formula}
  GET  /events             server-sent events

With --watch and an elements_file configured, the element table is reloaded
whenever the file changes.`,
		Example: `  stoich serve
  stoich serve --addr :9000 --elements ./elements.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from serve.addr)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload elements_file when it changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := cmdCtx.Cfg.Serve.Addr
	if cmd.Flags().Changed("addr") {
		addr = opts.Addr
	}
	watch := cmdCtx.Cfg.Serve.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}
	if watch && cmdCtx.Elements.Path() == "" {
		cmdCtx.Renderer.Warning("--watch has no effect without an elements file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Service: cmdCtx.Service,
		Source:  cmdCtx.Elements,
		Addr:    addr,
		Watch:   watch,
		Logger:  cmdCtx.Logger,
	})

	cmdCtx.Renderer.Muted("Listening on http://" + addr + " (Ctrl+C to stop)")
	return srv.Serve(ctx)
}
