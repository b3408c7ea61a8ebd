package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/interview-tracker/pkg/config"
	"github.com/wadjakorntonsri/interview-tracker/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.QuestionService, logger *zap.Logger) http.Handler {
	h := NewHTTPHandler(service, NewFlasher(cfg.SecretKey, cfg.IsProduction()), logger)

	metrics := NewMetrics()
	mw := NewMiddleware(logger, metrics)

	mux := http.NewServeMux()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, mw.Instrument(pattern, fn))
	}

	handle("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Pages
	handle("GET /{$}", h.Index)
	handle("GET /stats", h.Stats)
	handle("GET /add", h.AddForm)
	handle("POST /add", h.Add)
	handle("GET /questions", h.List)
	handle("GET /edit/{id}", h.EditForm)
	handle("POST /edit/{id}", h.Edit)
	handle("POST /delete/{id}", h.Delete)
	handle("POST /toggle_solved/{id}", h.ToggleSolved)
	handle("GET /export", h.Export)
	handle("GET /random", h.Random)

	// JSON API
	handle("GET /api/v1/questions", h.APIList)
	handle("GET /api/v1/stats", h.APIStats)

	// RequestID -> Recover -> Logging -> mux
	return mw.RequestID(mw.Recover(mw.Logging(mux)))
}
