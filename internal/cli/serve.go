package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code-assist/internal/di"
	"code-assist/internal/infra/otel"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout     = 10 * time.Second
	startupPingTimeout  = 3 * time.Second
	telemetryFlushLimit = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Start the HTTP API serving /ask, /assist, /metrics, /healthz and /readyz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	otelShutdown, err := otel.InitProvider(ctx, cfg.OTel)
	if err != nil {
		return err
	}

	log := newLogger(os.Stdout)

	app, err := di.NewApplicationComponents(cfg, log)
	if err != nil {
		_ = otelShutdown(context.Background())
		return err
	}

	// The backend may come up later; readiness reports it until then.
	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	if err := app.Engine.Ping(pingCtx); err != nil {
		log.WarnContext(ctx, "search backend not reachable at startup", "error", err)
	}
	cancel()

	g, gCtx := errgroup.WithContext(ctx)
	e := app.NewEchoServer(gCtx)
	addr := cfg.ListenAddr()

	g.Go(func() error {
		log.InfoContext(ctx, "starting code-assist server", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushLimit)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server exited properly")
	return nil
}
