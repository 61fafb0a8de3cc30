package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/textviz/internal/server"
	"github.com/1broseidon/textviz/internal/tracer"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Start the HTTP server that hosts the single-page UI and the session API.

Every browser session gets its own generation state. Sessions expire after
SESSION_TTL of inactivity.

Example:
  textviz serve
  textviz serve --port 9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if servePort != "" {
			a.cfg.App.Port = servePort
		}

		shutdownTracer := tracer.InitTracer(ctx, a.cfg.Tracing, a.logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				a.logger.Warnf("Tracer shutdown error: %v", err)
			}
		}()

		srv := server.New(a.cfg, a.newOrchestrator, a.logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.logger.Info("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			a.logger.Warnf("Server shutdown error: %v", err)
			return err
		}
		a.logger.Info("Server stopped gracefully")
		return nil
	},
}

func init() {
	AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (default: APP_PORT env var or 8080)")
}
