// internal/httpserver/server.go
//
// HTTP server wiring for the spelling game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/audio/*".
//   - Round endpoints (optional auth): GET /round, POST /round/{place,unplace,key,check,skip,input}.
//   - Websocket (optional auth): GET /ws for pushed feedback and live input.
//   - Leaderboard (optional auth): GET /leaderboard.
//   - Auth endpoints: /auth/signup, /auth/login, /auth/logout, /auth/me.
//
// Notes:
//   - Every player (account or anonymous cookie) gets one session holding
//     a game.Controller; sessions idle for sessionIdle are swept.
//   - The websocket route sits outside the request timeout.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellbank/internal/daily"
	"github.com/robalobadob/spellbank/internal/feedback"
	"github.com/robalobadob/spellbank/internal/game"
	"github.com/robalobadob/spellbank/internal/store"
	"github.com/robalobadob/spellbank/internal/ws"
)

const (
	sessionIdle  = 30 * time.Minute
	sweepEvery   = time.Minute
	audioURLPath = "/audio"
)

// Options carries what main resolves before building the server.
type Options struct {
	Words    []string            // play order; required
	AudioDir string              // optional letter samples, served at /audio
	Samples  feedback.Samples    // samples found in AudioDir
	Clock    game.Scheduler      // nil: wall clock
	Now      func() time.Time    // nil: time.Now
	Registry *prometheus.Registry // nil: a private registry
}

// Server bundles router, progress store, DB handle and live sessions.
type Server struct {
	r        *chi.Mux
	store    store.Store
	db       *sql.DB
	attempts *daily.Store
	hub      *ws.Hub
	sessions *registry
	metrics  *metrics
	opts     Options
	salt     string
	stop     chan struct{}
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil, which disables accounts and the leaderboard.
func New(st store.Store, db *sql.DB, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = game.WallClock{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		hub:     ws.NewHub(originPatterns()),
		metrics: newMetrics(opts.Registry),
		opts:    opts,
		salt:    getEnv("DAILY_SALT", "local_dev_salt"),
		stop:    make(chan struct{}),
	}
	if db != nil {
		s.attempts = daily.NewStore(db)
	}
	s.sessions = newRegistry(s.newSession, s.metrics.sessions)

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// Websocket: long-lived, so no handler timeout.
	s.r.With(s.withOptionalAuth()).Get("/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"spellbank","endpoints":["/health","GET /round","POST /round/*","GET /ws","GET /leaderboard","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

		// Round endpoints: OPTIONAL AUTH (guests can play)
		s.mountRound(r.With(s.withOptionalAuth()))

		if db != nil {
			s.mountLeaderboard(r.With(s.withOptionalAuth()))
			s.mountAuthRoutes(r)
		}

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	if opts.AudioDir != "" {
		fs := http.StripPrefix(audioURLPath+"/", http.FileServer(http.Dir(opts.AudioDir)))
		s.r.Handle(audioURLPath+"/*", fs)
	}

	return s
}

// Start begins serving HTTP on addr and sweeps idle sessions until the
// context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go s.sweepLoop()
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close stops the sweeper and every live session.
func (s *Server) Close() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	s.sessions.closeAll()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) sweepLoop() {
	t := time.NewTicker(sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := s.sessions.sweep(s.opts.Now(), sessionIdle); n > 0 {
				log.Debug().Int("sessions", n).Msg("swept idle sessions")
			}
		case <-s.stop:
			return
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// clientOrigin is CLIENT_ORIGIN, defaulting to http://localhost:5173.
func clientOrigin() string {
	return getEnv("CLIENT_ORIGIN", "http://localhost:5173")
}

// originPatterns turns CLIENT_ORIGIN into websocket origin host patterns.
func originPatterns() []string {
	o := clientOrigin()
	o = strings.TrimPrefix(strings.TrimPrefix(o, "https://"), "http://")
	return []string{o}
}

// corsFromEnv enables credentialed CORS for a single origin.
func corsFromEnv(next http.Handler) http.Handler {
	origin := clientOrigin()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// writeError sends {"error": msg} with status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
