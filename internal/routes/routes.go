package routes

import (
	"net/http"
	"time"

	"github.com/templui/scoutbot/internal/handler"
	"github.com/templui/scoutbot/internal/middleware"
)

// probeLimit caps liveness requests per client IP per minute
const probeLimit = 120

// SetupRoutes builds the liveness server. It reads no bot state.
func SetupRoutes() http.Handler {
	health := handler.NewHealthHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", health.Health)
	mux.HandleFunc("GET /health", health.Health)

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.Recover,
		middleware.RateLimit(middleware.NewRateLimiter(probeLimit, time.Minute)),
	)
}
