package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"github.com/dukerupert/chartmaker/internal/illustration"
	"github.com/dukerupert/chartmaker/internal/server"
)

const (
	shutdownTimeout  = 5 * time.Second
	limiterCleanupIn = 5 * time.Minute
)

func newServeCmd(flags *rootFlags, now func() time.Time) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, live updates and illustration worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags, now)
			if err != nil {
				return err
			}
			defer a.Close()
			if port != "" {
				a.cfg.Port = port
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Override the configured listen port")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	srv := server.New(a.db, a.svc, a.hub, a.now, a.cfg.Illustration.RateLimit, a.logger)
	httpServer := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				a.logger.Info("shutting down")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// HTTP server.
	g.Add(
		func() error {
			a.logger.Info("chartmaker listening", "addr", httpServer.Addr, "version", Version)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		},
		func(_ error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("http shutdown", "error", err)
			}
		},
	)

	// Illustration worker, only when a provider is configured.
	if ic := a.cfg.Illustration; ic.Endpoint != "" {
		gen := illustration.NewHTTPGenerator(illustration.Config{
			Endpoint:   ic.Endpoint,
			APIKey:     ic.APIKey,
			Timeout:    ic.Timeout,
			MaxRetries: ic.MaxRetries,
		})
		worker := illustration.NewWorker(gen, ic.QueueSize, a.svc, a.logger.With("component", "illustration"))
		a.svc.SetQueue(worker)

		workerCtx, workerCancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				if err := worker.Run(workerCtx); !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			},
			func(_ error) {
				workerCancel()
			},
		)
	} else {
		a.logger.Info("illustration provider not configured; illustration requests are disabled")
	}

	// Rate limiter housekeeping.
	{
		tickCtx, tickCancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				ticker := time.NewTicker(limiterCleanupIn)
				defer ticker.Stop()
				for {
					select {
					case <-tickCtx.Done():
						return nil
					case <-ticker.C:
						srv.RateLimiter().Cleanup()
					}
				}
			},
			func(_ error) {
				tickCancel()
			},
		)
	}

	return g.Run()
}
