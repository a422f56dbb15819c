package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"tax-engine/internal/engine"
	"tax-engine/internal/handler"
	"tax-engine/internal/metrics"
	"tax-engine/internal/regime"
	"tax-engine/internal/reminders"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation and reference API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = a.cfg.Port
			}

			m := metrics.New()
			h := handler.New(handler.Options{
				Engine:       a.engine,
				Content:      a.content,
				Tracker:      a.tracker,
				Metrics:      m,
				Logger:       a.log,
				MaxBodyBytes: a.cfg.MaxBodyBytes,
			})

			sched, err := reminders.New(a.tracker, m, a.log, a.cfg.DeadlineSchedule)
			if err != nil {
				return err
			}

			srv := &fasthttp.Server{
				Handler:            h.Handle,
				Name:               "tax-engine",
				ReadTimeout:        10 * time.Second,
				WriteTimeout:       10 * time.Second,
				IdleTimeout:        60 * time.Second,
				MaxRequestBodySize: a.cfg.MaxBodyBytes,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched.Start()
			defer sched.Stop()

			if watch || a.cfg.WatchRegime {
				startWatch(ctx, a, h)
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server.starting", "port", port, "regime", a.engine.Regime().Name)
				errCh <- srv.ListenAndServe(":" + port)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info("server.stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8080)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload TAX_REGIME_FILE when it changes")
	return cmd
}

func startWatch(ctx context.Context, a *app, h *handler.Handler) {
	src := a.cfg.RegimeFile
	if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		a.log.Warn("regime.watch_skipped", "reason", "TAX_REGIME_FILE is not a local file", "source", src)
		return
	}
	go func() {
		err := regime.Watch(ctx, src, a.log, func(r regime.Regime) {
			h.SetEngine(engine.New(r))
		})
		if err != nil {
			a.log.Error("regime.watch_failed", "error", err)
		}
	}()
}
