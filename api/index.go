package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/interview-tracker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/interview-tracker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/interview-tracker/pkg/config"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/interview-tracker/pkg/logging"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: "json"})
	if err != nil {
		panic(err)
	}

	// Note: On Vercel, a local sqlite file is ephemeral unless DATABASE_URL points at Turso
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	service := services.NewQuestionService(repo)
	mux = handler.NewRouter(cfg, service, logger)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
