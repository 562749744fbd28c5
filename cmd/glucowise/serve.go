package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jwulff/glucowise-go/internal/api"
	"github.com/jwulff/glucowise-go/internal/auth"
	"github.com/jwulff/glucowise-go/internal/nutritionix"
	"github.com/jwulff/glucowise-go/internal/realtime"
	"github.com/jwulff/glucowise-go/internal/reminder"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	Long: `Serves the REST API and the alerts websocket. Also checks reminders
every minute and, when Dexcom credentials are configured, imports CGM
readings on the poll interval.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(logger.Named("realtime"))
	a, err := openApp(tracker.WithAlerts(hub))
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []api.Option{api.WithHub(hub), api.WithLogger(logger.Named("api"))}
	if cfg.NutritionixEnabled() {
		opts = append(opts, api.WithFoods(nutritionix.NewClient(cfg.Nutritionix.AppID, cfg.Nutritionix.AppKey)))
	}
	gin.SetMode(cfg.Server.Mode)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.GetTokenTTL())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.New(a.tracker, issuer, opts...).Handler(),
		ReadHeaderTimeout: cfg.GetReadTimeout(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Reminders.Enabled {
		scheduler := reminder.NewScheduler(a.store, hub,
			reminder.WithLocation(a.loc),
			reminder.WithLogger(logger.Named("reminder")))
		g.Go(func() error { return scheduler.Run(ctx) })
	}

	if cfg.DexcomEnabled() {
		importer, err := a.dexcomImporter(ctx)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error { return importer.Poll(ctx, cfg.GetPollInterval()) })
	}

	return g.Wait()
}
