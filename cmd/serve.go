package cmd

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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tharoon321/event-attendance/activeevent"
	"github.com/Tharoon321/event-attendance/config"
	"github.com/Tharoon321/event-attendance/controllers"
	"github.com/Tharoon321/event-attendance/realtime"
	"github.com/Tharoon321/event-attendance/repositories"
	"github.com/Tharoon321/event-attendance/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and realtime server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Logging)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	stores, client, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("storage unavailable")
		return err
	}

	images := utils.NewImageIntake(cfg.Upload.Dir, cfg.Upload.PublicPath)
	if err := images.EnsureDir(); err != nil {
		return err
	}

	hub := realtime.NewHub(logger, func(r *http.Request) bool {
		return cfg.CORS.OriginAllowed(r.Header.Get("Origin"))
	})

	handler := controllers.New(controllers.Deps{
		Stores:             stores,
		History:            cfg.History,
		Active:             activeevent.NewHolder(),
		Hub:                hub,
		Tokens:             utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry),
		Passcode:           utils.NewPasscodeChecker(cfg.Auth.AdminPasscode, cfg.Auth.AdminPasscodeHash),
		Images:             images,
		Logger:             logger,
		Timeout:            cfg.RequestTimeout,
		MaxUploadMemory:    cfg.Upload.MaxMemory,
		CORS:               cfg.CORS,
		LoginRatePerMinute: cfg.RateLimit.LoginPerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Driver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("error disconnecting MongoDB")
		} else {
			logger.Info().Msg("MongoDB disconnected")
		}
	}

	logger.Info().Msg("server exited")
	return nil
}

func openStores(ctx context.Context, cfg config.Config, logger zerolog.Logger) (repositories.Stores, *mongo.Client, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		logger.Warn().Msg("using in-memory storage; data is lost on restart")
		return repositories.NewMemoryStores(), nil, nil
	}
	client, db, err := config.ConnectDB(ctx, cfg.Storage, logger)
	if err != nil {
		return repositories.Stores{}, nil, err
	}
	return repositories.NewMongoStores(db), client, nil
}
