package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grc/internal/db"
	"grc/internal/domain/audit"
	"grc/internal/domain/auth"
	"grc/internal/domain/controls"
	"grc/internal/domain/dashboard"
	"grc/internal/domain/dsr"
	"grc/internal/domain/notifications"
	"grc/internal/domain/risks"
	"grc/internal/domain/standards"
	"grc/internal/platform/config"
	platformdb "grc/internal/platform/db"
	"grc/internal/platform/jobs"
	"grc/internal/platform/metrics"
	audithandler "grc/internal/transport/http/handlers/audit"
	authhandler "grc/internal/transport/http/handlers/auth"
	controlshandler "grc/internal/transport/http/handlers/controls"
	dashboardhandler "grc/internal/transport/http/handlers/dashboard"
	dsrhandler "grc/internal/transport/http/handlers/dsr"
	notificationshandler "grc/internal/transport/http/handlers/notifications"
	riskshandler "grc/internal/transport/http/handlers/risks"
	standardshandler "grc/internal/transport/http/handlers/standards"
	"grc/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := platformdb.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	m := metrics.New()
	perms := auth.NewPermissions()

	authStore := auth.NewStore(pool)
	standardsStore := standards.NewStore(pool)
	controlStore := controls.NewStore(pool)
	riskStore := risks.NewStore(pool)
	requestStore := dsr.NewStore(pool)
	auditSvc := audit.New(pool)
	notifySvc := notifications.New(pool)

	controlSvc := controls.NewService(controlStore, standardsStore, m)
	riskSvc := risks.NewService(riskStore, m)
	requestSvc := dsr.NewService(requestStore, m)
	dashboardSvc := dashboard.NewService(controlStore, riskStore, requestStore)

	jobSvc := jobs.New(pool, cfg, controlStore, requestStore, notifySvc)
	jobSvc.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(m))
	}
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		standardshandler.NewHandler(standardsStore, perms).RegisterRoutes(r)
		controlshandler.NewHandler(controlSvc, controlStore, perms, auditSvc).RegisterRoutes(r)
		riskshandler.NewHandler(riskSvc, riskStore, perms, auditSvc).RegisterRoutes(r)
		dsrhandler.NewHandler(requestSvc, requestStore, perms, auditSvc).RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardSvc, perms).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, perms).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
	})

	log.Printf("GRC server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
