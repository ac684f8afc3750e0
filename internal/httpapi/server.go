// Package httpapi exposes game sessions over HTTP.
//
// Routes:
//
//	GET  /health
//	POST /games                       create a game, returns its seat token
//	GET  /games/{id}                  current state
//	DELETE /games/{id}                remove a game (seat token required)
//	GET  /games/{id}/moves/{square}   legal destinations of one square
//	POST /games/{id}/moves            apply a move (seat token required)
//	GET  /games/{id}/board.svg        board diagram, ?selected= highlights moves
//	GET  /assets                      piece image names
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/session"
)

// Options tune the server.
type Options struct {
	RequestTimeout time.Duration // Per-request handler deadline; 10s when zero
	SquareSize     int           // Diagram square size in pixels
	AssetPrefix    string        // Prefix for piece image links in diagrams
}

// Server routes requests to the session manager.
type Server struct {
	r      *chi.Mux
	games  *session.Manager
	tokens *session.Tokens
	log    zerolog.Logger
	opts   Options
}

// New constructs a Server, installs middleware and registers routes.
func New(games *session.Manager, tokens *session.Tokens, log zerolog.Logger, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{
		r:      chi.NewRouter(),
		games:  games,
		tokens: tokens,
		log:    log,
		opts:   opts,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog(log))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.RequestTimeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/assets", s.handleAssets)

	s.r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleState)
			r.With(s.requireSeat).Delete("/", s.handleDelete)
			r.Get("/moves/{square}", s.handleLegalMoves)
			r.With(s.requireSeat).Post("/moves", s.handleMove)
			r.Get("/board.svg", s.handleBoardSVG)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }
