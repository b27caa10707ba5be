package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/tsport/internal/server"
)

func newServeCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve translation over HTTP",
		Long: `Serve translation over HTTP.

Endpoints:
  POST /v1/translate   body: document text, query: serde, strict
  GET  /healthz        liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("engine", "gin", "HTTP engine: "+strings.Join(server.Engines.Keys(), ", "))
	cmd.Flags().Bool("serde", false, "Default for the serde query parameter")
	cmd.Flags().Bool("strict", false, "Default for the strict query parameter")
	cmd.Flags().Bool("json-logs", false, "Log JSON lines instead of console output")
	return cmd
}

func runServe(cmd *cobra.Command, opts *options) error {
	config, _, err := opts.load(cmd)
	if err != nil {
		return reportAndReturn(cmd, err)
	}

	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	logger, err := server.NewLogger(jsonLogs, config.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(server.Config{
		Addr:   config.Server.Addr,
		Engine: config.Server.Engine,
		Serde:  config.Serde,
		Strict: config.Strict,
	}, logger)
	if err != nil {
		return reportAndReturn(cmd, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
