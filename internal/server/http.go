package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/response"
)

// Pinger is a dependency checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handlers groups the API handlers mounted by NewHandler.
type Handlers struct {
	Categories *category.HTTPHandler
	Questions  *question.HTTPHandler
	Quiz       *quiz.HTTPHandler
	// Dependencies are pinged by /readyz, keyed by name.
	Dependencies map[string]Pinger
}

// NewHTTPServer wraps NewHandler in an http.Server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg.CORS, logger, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler wires the trivia routes plus health and metrics endpoints.
func NewHandler(cors config.CORS, logger zerolog.Logger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", readiness(logger, h.Dependencies))
	mux.Handle("/metrics", promhttp.Handler())

	route(mux, "/categories", h.Categories.HandleList)
	route(mux, "/categories/{id}/questions", h.Questions.HandleByCategory)
	route(mux, "/questions", h.Questions.HandleCollection)
	route(mux, "/questions/search", h.Questions.HandleSearch)
	route(mux, "/questions/{id}", h.Questions.HandleItem)
	route(mux, "/quizzes", h.Quiz.HandleNext)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
	})

	return logging.Middleware(logger)(withCORS(cors)(mux))
}

// route registers handler and records request count and latency under pattern.
func route(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	labels := prometheus.Labels{"route": pattern}
	instrumented := promhttp.InstrumentHandlerDuration(
		metrics.HTTPDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(metrics.HTTPRequests.MustCurryWith(labels), handler),
	)
	mux.Handle(pattern, instrumented)
}

func readiness(logger zerolog.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
				httperrors.RespondErrorWithDetails(w, http.StatusServiceUnavailable,
					httperrors.ErrCodeServiceUnavailable, httperrors.MsgServiceUnavailable,
					map[string]interface{}{"dependency": name})
				return
			}
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
