package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	apphttp "myspace/internal/http"
	applog "myspace/internal/log"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :$PORT)")

	return cmd
}

func (a *App) serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.Config.Addr()
	}

	srv, err := apphttp.NewServer(apphttp.Config{
		Addr:              addr,
		APITimeout:        a.apiTimeout(),
		DayReloadInterval: a.reloadInterval(),
		RateLimitRPM:      a.Config.RateLimitRPM,
		TrustedProxies:    a.Config.TrustedProxies,
	}, a.Reader, a.Views, a.Logger, a.Caches)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	if a.Caches != nil && a.Config.CacheSize > 0 && a.Config.CacheTTL > 0 {
		a.Caches.StartCleanup(a.Config.CacheTTL)
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	shutdownCtx, done := GracefulShutdown(runCtx, a.Logger, shutdownTimeout, srv.Shutdown)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	a.Logger.Info("Starting myspace server",
		applog.FieldOperation, applog.OpStartup,
		"addr", addr,
		applog.FieldBackend, a.Config.DataBackend)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			stop()
			<-done
			return fmt.Errorf("server error: %w", err)
		}
	case <-shutdownCtx.Done():
	}

	WaitForShutdown(shutdownCtx, done)
	a.Logger.Info("Server stopped gracefully")
	return nil
}
