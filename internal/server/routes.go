package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"whackamole/internal/config"
	"whackamole/internal/game"
	"whackamole/internal/logging"
	"whackamole/internal/metrics"
	"whackamole/internal/sessions"
)

// NewRouter wires every route. Split from Run so tests can mount the
// router on an httptest server.
func NewRouter(srv *Server) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", srv.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Post("/session", srv.handleNewSession)
	r.Get("/state", srv.handleState)
	r.Post("/start", srv.handleStart)
	r.Post("/stop", srv.handleStop)
	r.Post("/mute", srv.handleMute)
	r.Get("/ws", srv.handleWS)

	return r
}

func Run() error {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.PrettyLog)

	store := sessions.NewStore(game.Config{
		RoundDuration: cfg.RoundDuration,
		MinShowMs:     cfg.MinShowMs,
		MaxShowMs:     cfg.MaxShowMs,
		SlotCount:     cfg.SlotCount,
	}, logger)

	srv := &Server{
		Sessions: store,
		Log:      logger.With().Str("component", "server").Logger(),
	}

	addr := "0.0.0.0:" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server listening")
	return http.ListenAndServe(addr, NewRouter(srv))
}
