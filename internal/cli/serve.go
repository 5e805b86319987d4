package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsverify/internal/pipeline"
	"github.com/ppiankov/newsverify/internal/server"
)

var (
	serveFetch  fetchFlags
	listenAddr  string
	allowOrigin string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve exposes verification over HTTP:
  POST /api/verify   {"url": "...", "headline": "...", "image": "<base64>"}
  GET  /api/health

Example:
  newsverify serve
  newsverify serve --listen :8080 --allow-origin https://app.example.org`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (default from config: :5001)")
	serveCmd.Flags().StringVar(&allowOrigin, "allow-origin", "", "CORS allowed origin (default from config: *)")

	serveFetch.register(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, &serveFetch, os.Stderr)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.Server.ListenAddr = listenAddr
	}
	if cmd.Flags().Changed("allow-origin") {
		cfg.Server.AllowedOrigin = allowOrigin
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.NewPipeline(cfg, logger)
	return server.NewServer(cfg.Server, p, logger).Run(ctx)
}
