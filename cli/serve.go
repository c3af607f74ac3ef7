package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/smart-pos/config"
	"github.com/yeremiapane/smart-pos/database"
	"github.com/yeremiapane/smart-pos/kds"
	"github.com/yeremiapane/smart-pos/router"
	"github.com/yeremiapane/smart-pos/services"
	"github.com/yeremiapane/smart-pos/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	Port string
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the terminal HTTP and websocket server",
		Long: `Restore the last saved snapshot, or the seed data on first run, and
serve the terminal API until interrupted. Every applied change is saved in
the background and pushed to the connected station screens.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.Port != "" {
				cfg.Port = opts.Port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "listen port (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.GinMode)
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.TraceStdout {
		shutdown, err := utils.InitTracing(os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				utils.ErrorLogger.Errorf("trace shutdown: %v", err)
			}
		}()
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	snap, err := database.Boot(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	terminal := services.NewTerminal(newEngine(cfg), store, snap)
	hub := kds.NewHub()
	terminal.Subscribe(hub.Publish)

	if cfg.GeminiAPIKey == "" {
		utils.InfoLogger.Warn("GEMINI_API_KEY not set, AI product descriptions are disabled")
	}
	r := router.SetupRouter(router.Deps{
		Terminal:     terminal,
		Hub:          hub,
		Descriptions: services.NewDescriptionService(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel),
		Receipts:     services.NewReceiptPDF(cfg.ReceiptFont),
		CORSOrigin:   cfg.CORSOrigin,
		RateLimit:    rate.Limit(cfg.RateLimitPerSecond),
		RateBurst:    cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "smart-pos"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			hub.Close()
			terminal.Close()
			return err
		}
	case <-ctx.Done():
	}

	utils.InfoLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("HTTP shutdown: %v", err)
	}
	hub.Close()
	if err := terminal.Close(); err != nil {
		return fmt.Errorf("failed to save final snapshot: %w", err)
	}
	return nil
}
