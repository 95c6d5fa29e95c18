// internal/httpserver/server.go
//
// HTTP server wiring for the Battleships backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): mounted under /game.
//   - Results endpoints (optional auth): /results/leaderboard, /results/mine.
//   - Auth + profile endpoints: /auth/*, /stats/me.
//
// Notes:
//   - A signed-in user's id is their match id; guests get an anonymous cookie id instead.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/results"
	"github.com/robalobadob/battleships/internal/session"
)

// Server bundles the router, the session service, and the DB handle for users and results.
type Server struct {
	r       *chi.Mux
	svc     *session.Service
	db      *sql.DB
	results *results.Store
	cfg     config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *session.Service, db *sql.DB, cfg config.Config) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, db: db, results: results.NewStore(db), cfg: cfg}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.Server.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "battleships-go",
			"endpoints": []string{
				"/health",
				"POST /game/initialize", "GET /game/status", "POST /game/shoot",
				"GET /game/board", "POST /game/reset", "POST /game/quit",
				"/results/*", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.mountGame(s.r.With(s.withOptionalAuth()))
	s.mountResults(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
