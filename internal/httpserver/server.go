// internal/httpserver/server.go
//
// HTTP server wiring for the games blog.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging, Prometheus instrumentation).
//   - Public endpoints: "/", "/health", "/metrics", "/posts", "/posts/{id}".
//   - Widget endpoints behind the session cookie: /tictactoe/*, /bee/*.
//
// Notes:
//   - Every browser gets its own session (signed cookie) owning one board game
//     and one spelling bee game. The handlers are the page controller: they
//     hold the engines, the engines never see HTTP.
//   - CORS is origin-aware and credentials-enabled so the session cookie works
//     from the static front end.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/blog/internal/bee"
	"github.com/robalobadob/blog/internal/blog"
	"github.com/robalobadob/blog/internal/metrics"
	"github.com/robalobadob/blog/internal/store"
)

// Options carries the collaborators and settings the server needs.
type Options struct {
	Dictionary    bee.Dictionary
	Blog          *blog.Blog
	Rules         bee.Rules
	SessionSecret string
	DailySalt     string
	ClientOrigin  string
	SecureCookies bool
}

// Server bundles router, session store and engine collaborators.
type Server struct {
	r          *chi.Mux
	store      store.Store
	dict       bee.Dictionary
	blog       *blog.Blog
	rules      bee.Rules
	sessionKey []byte
	dailySalt  string
	origin     string
	secure     bool
	now        func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) (*Server, error) {
	key, err := deriveKey(opts.SessionSecret, "blog session cookie v1")
	if err != nil {
		return nil, err
	}
	if opts.Rules == (bee.Rules{}) {
		opts.Rules = bee.DefaultRules
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:          chi.NewRouter(),
		store:      st,
		dict:       opts.Dictionary,
		blog:       opts.Blog,
		rules:      opts.Rules,
		sessionKey: key,
		dailySalt:  opts.DailySalt,
		origin:     opts.ClientOrigin,
		secure:     opts.SecureCookies,
		now:        time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(metrics.Middleware)              // request counters + latency
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"games-blog","endpoints":["/health","/metrics","/posts","/tictactoe","/bee"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Blog
	s.mountBlog(s.r)

	// Widgets, one engine pair per session
	s.r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		s.mountBoard(r)
		s.mountBee(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured front-end origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
