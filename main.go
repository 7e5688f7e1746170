package main

import (
	"blog-backend/config"
	"blog-backend/database"
	"blog-backend/handlers"
	"blog-backend/middleware"
	"blog-backend/session"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("неизвестный LOG_LEVEL %q, используется info", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}
	log := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, err := database.NewStore(startCtx, cfg)
	if err != nil {
		log.Fatalf("ошибка подключения к хранилищу: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(startCtx); err != nil {
		log.Fatalf("ошибка создания схемы: %v", err)
	}
	log.WithField("driver", cfg.StoreDriver).Info("connected to store")

	sessionStore, err := session.NewStore(startCtx, cfg)
	if err != nil {
		log.Fatalf("ошибка подключения к хранилищу сессий: %v", err)
	}
	defer sessionStore.Close()
	log.WithField("backend", cfg.SessionBackend).Info("session store ready")

	sessions := session.NewManager(sessionStore, cfg.SecretKey, session.Options{
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.CookieSecure,
	})

	h := &handlers.Handler{
		Store:    store,
		Sessions: sessions,
		Timeout:  cfg.RequestTimeout,
	}

	var handler http.Handler = handlers.NewRouter(h)
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.LoggingMiddleware(log)(handler)
	handler = middleware.ProxyMiddleware(cfg.TrustProxy)(handler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("сервер запущен на %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ошибка сервера: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Gracefully shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("ошибка остановки сервера: %v", err)
	}
}
