package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tlagarde/folbase/internal/api/handlers"
	mw "github.com/tlagarde/folbase/internal/api/middleware"
	"github.com/tlagarde/folbase/internal/config"
	"github.com/tlagarde/folbase/internal/service"
	"github.com/tlagarde/folbase/internal/store"
	"go.uber.org/zap"
)

// App holds the router and background services for lifecycle management.
type App struct {
	Router   *chi.Mux
	Sessions *service.SessionService

	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	archiveStore := store.NewArchiveStore(db)

	sessionSvc := service.NewSessionService(archiveStore, config.SessionTTL(), logger)

	sessionHandler := handlers.NewSessionHandler(sessionSvc)
	theoryHandler := handlers.NewTheoryHandler(archiveStore)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sessions:  sessionSvc,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetByID)
				r.Post("/operations", sessionHandler.ApplyOperation)
				r.Post("/finalize", sessionHandler.Finalize)
				r.Get("/theory", sessionHandler.GetTheory)
				r.Post("/queries/validate", sessionHandler.ValidateQuery)
			})
		})

		r.Route("/theories", func(r chi.Router) {
			r.Get("/", theoryHandler.List)
			r.Get("/{id}", theoryHandler.GetByID)
		})
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

func (a *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"uptime_seconds": int64(time.Since(a.startTime).Seconds()),
			"requests_total": a.requestCount.Load(),
			"errors_total":   a.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc_mb":  mem.HeapAlloc / 1024 / 1024,
			"total_alloc_mb": mem.TotalAlloc / 1024 / 1024,
		})
	}
}
