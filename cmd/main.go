package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-care/internal/auth"
	"github.com/ukydev/fleet-care/internal/config"
	"github.com/ukydev/fleet-care/internal/dashboard"
	"github.com/ukydev/fleet-care/internal/db"
	"github.com/ukydev/fleet-care/internal/handlers"
	"github.com/ukydev/fleet-care/internal/middleware"
	"github.com/ukydev/fleet-care/internal/models"
	"github.com/ukydev/fleet-care/internal/notify"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := configureLogging(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()
	log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")

	store := db.NewStore(client, cfg.MongoDB)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Could not ensure indexes")
	}

	svc := dashboard.NewService(store.Equipment, store.Maintenance, store.Suppliers, cfg.StaleAfter)
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           newRouter(svc, authService, cfg.RateLimitPerMinute, cfg.TrustProxyHeaders),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("address", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if cfg.MQTT.Enabled() {
		publisher, err := notify.NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			log.WithError(err).Error("Alert publishing disabled")
		} else {
			defer publisher.Close()
			notifier := notify.NewNotifier(svc, publisher, cfg.MQTT.Topic)
			g.Go(func() error {
				return notifier.Run(gCtx, cfg.MQTT.PublishInterval)
			})
		}
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}

func configureLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(lvl)
	return nil
}

func newRouter(svc handlers.Dashboard, authService *auth.Service, ratePerMinute int, trustProxy bool) http.Handler {
	h := handlers.NewDashboardHandler(svc)
	authMW := middleware.NewAuthMiddleware(authService)
	limiter := middleware.NewRateLimitMiddleware(trustProxy).RateLimit(ratePerMinute, 60)

	protect := func(action string, fn http.HandlerFunc) http.Handler {
		return limiter(authMW.Authenticate(authMW.RequirePermission(action)(fn)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.Handle("/api/me", limiter(authMW.Authenticate(http.HandlerFunc(h.Me))))
	mux.Handle("/api/alerts", protect(models.ActionViewAlerts, h.Alerts))
	mux.Handle("/api/dashboard/summary", protect(models.ActionViewAlerts, h.Summary))
	mux.Handle("/api/equipment", protect(models.ActionViewEquipment, h.Equipment))
	mux.Handle("/api/search", protect(models.ActionSearch, h.Search))
	mux.Handle("/api/equipment/{tag}", protect(models.ActionViewEquipment, h.EquipmentDetail))
	mux.Handle("/api/equipment/{tag}/readings", protect(models.ActionRecordReadings, h.Readings))
	mux.Handle("/api/equipment/{tag}/interval", protect(models.ActionManageIntervals, h.Interval))

	return middleware.RequestLogger(mux)
}
