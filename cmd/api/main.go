package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cleanbook/internal/admin"
	"cleanbook/internal/auth"
	"cleanbook/internal/catalog"
	"cleanbook/internal/httpapi"
	"cleanbook/internal/notify"
	"cleanbook/internal/session"
	"cleanbook/pkg/config"
	"cleanbook/pkg/db"
	"cleanbook/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := catalog.Validate(); err != nil {
		log.Fatal("service catalog is inconsistent", zap.Error(err))
	}
	if cfg.IsProd() && cfg.Admin.JWTSecret == "cleanbook-dev-secret" {
		log.Fatal("ADMIN_JWT_SECRET must be set in prod")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer conn.Close()

	if cfg.MigrationsPath != "" {
		version, err := db.Migrate(cfg.MigrationsPath, cfg)
		if err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
		log.Info("migrations applied", zap.Uint("version", version))
	}

	sessions, err := session.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = sessions.Close() }()

	var sender notify.Sender = notify.DisabledSender{}
	if cfg.Mail.Enabled() {
		ses, err := notify.NewSESSender(ctx, cfg.Mail.SESRegion, cfg.Mail.FromEmail, cfg.Mail.FromName)
		if err != nil {
			log.Fatal("ses", zap.Error(err))
		}
		sender = ses
	} else {
		log.Warn("SES_REGION or SES_FROM_EMAIL not set; notification emails are disabled")
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg: cfg,
		DB:  conn,
		Log: log,
		Auth: &auth.Service{
			Users:    admin.NewRepository(conn),
			Sessions: sessions,
			Tokens:   auth.Tokens{Secret: []byte(cfg.Admin.JWTSecret), TTL: cfg.Admin.SessionTTL},
		},
		Notifier: &notify.Dispatcher{
			Sender:       sender,
			Recorder:     notify.NewRepository(conn),
			Log:          log.Named("notify"),
			BusinessName: cfg.Mail.FromName,
		},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http serve", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
}
