package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/auth"
	"github.com/chachabrian/wodlog-backend/internal/config"
	"github.com/chachabrian/wodlog-backend/internal/database"
	"github.com/chachabrian/wodlog-backend/internal/handlers"
	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/chachabrian/wodlog-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// backend is the union of the stores the authenticator and handlers need.
type backend interface {
	handlers.Store
	auth.ChallengeStore
	auth.AccountStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	gin.SetMode(gin.ReleaseMode)
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	var db backend
	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		db = store.NewMemory()
	default:
		gdb, err := database.InitDB(cfg, logger)
		if err != nil {
			return err
		}
		db = store.NewGorm(gdb)
	}

	// Initialize Redis (optional)
	var cache services.StatsCache = services.NopStatsCache{}
	if cfg.RedisURL != "" {
		client, err := services.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		cache = services.NewRedisStatsCache(client)
		logger.Info("stats cache: redis")
	}

	// Initialize Storage (S3 or local fallback)
	media, err := services.NewMediaStorage(cfg, logger)
	if err != nil {
		return err
	}

	// Initialize WebSocket hub
	hub := services.NewHub(cfg.AllowedOrigins(), logger)
	go hub.Run(ctx)

	authenticator := auth.NewAuthenticator(auth.Deps{
		Challenges: db,
		Accounts:   db,
		Sender:     newNotifier(cfg, logger),
		Tokens:     auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL),
		Logger:     logger,
	}, auth.Options{
		ChallengeTTL:    cfg.OTPTTL,
		RateLimitWindow: cfg.OTPRateWindow,
		RateLimitMax:    cfg.OTPRateMax,
		EchoCode:        cfg.OTPReturnToClient,
	})

	sweeper := auth.NewSweeper(db, auth.SystemClock, cfg.OTPSweepInterval, logger)
	go sweeper.Run(ctx)

	routerOpts := handlers.RouterOptions{AllowedOrigins: cfg.AllowedOrigins()}
	if !media.UsingS3() {
		routerOpts.UploadDir = media.LocalDir()
	}
	router := handlers.NewRouter(&handlers.Deps{
		Store:  db,
		Auth:   authenticator,
		Cache:  cache,
		Events: hub,
		Media:  media,
		Hub:    hub,
		Logger: logger,
	}, routerOpts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newNotifier wires whichever delivery channels are configured.
func newNotifier(cfg *config.Config, logger *zap.Logger) *services.CodeNotifier {
	n := &services.CodeNotifier{DevLog: cfg.IsDevelopment(), Logger: logger}

	mailer := &utils.Mailer{
		From:     cfg.EmailFrom,
		Password: cfg.SMTPPassword,
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Logger:   logger,
	}
	if mailer.Configured() {
		n.Email = mailer
	} else {
		logger.Warn("SMTP not configured, email codes will not be delivered")
	}

	sms := &utils.SMSClient{Username: cfg.ATUsername, APIKey: cfg.ATAPIKey, Logger: logger}
	if sms.Configured() {
		n.SMS = sms
	}
	return n
}
