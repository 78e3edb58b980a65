// Package server hosts quiz sessions over HTTP. Each browser gets its own
// session, bound through a signed cookie.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/timer"
)

const (
	cookieName = "quizgame"
	cookieKey  = "sid"
)

// Options configures a Server.
type Options struct {
	// NewSession builds the session for a new browser.
	NewSession func() *session.Session

	// CookieSecret signs the session cookie.
	CookieSecret []byte

	// SecureCookie restricts the session cookie to HTTPS. Leave it off when
	// serving plain HTTP or browsers never send the cookie back.
	SecureCookie bool

	// TickInterval is the websocket timer period.
	TickInterval time.Duration

	// Clock supplies tick times. Defaults to the wall clock.
	Clock session.Clock

	Logger *zap.Logger
}

// Server is the HTTP host.
type Server struct {
	router   *mux.Router
	cookies  *sessions.CookieStore
	registry *Registry
	driver   timer.Driver
	clock    session.Clock
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = session.SystemClock{}
	}

	cookies := sessions.NewCookieStore(opts.CookieSecret)
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode
	cookies.Options.MaxAge = 0
	cookies.Options.Secure = opts.SecureCookie

	s := &Server{
		router:   mux.NewRouter(),
		cookies:  cookies,
		registry: NewRegistry(opts.NewSession),
		driver:   timer.Driver{Interval: opts.TickInterval, Clock: clock},
		clock:    clock,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
	s.routes()
	return s
}

// Registry exposes the session registry, for pruning.
func (s *Server) Registry() *Registry {
	return s.registry
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/topics", s.handleTopics).Methods(http.MethodGet)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/participant", s.handleParticipant).Methods(http.MethodPost)
	api.HandleFunc("/configure", s.handleConfigure).Methods(http.MethodPost)
	api.HandleFunc("/start", s.handleStart).Methods(http.MethodPost)
	api.HandleFunc("/answer", s.handleAnswer).Methods(http.MethodPost)
	api.HandleFunc("/skip", s.handleSkip).Methods(http.MethodPost)
	api.HandleFunc("/tick", s.handleTick).Methods(http.MethodGet)
	api.HandleFunc("/end", s.handleEnd).Methods(http.MethodPost)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/timer", s.handleTimer).Methods(http.MethodGet)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// sessionFor returns the caller's session, creating one and setting the
// cookie when the request carries none or an unknown key.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	// A cookie that fails to decode still yields a fresh session.
	cs, _ := s.cookies.Get(r, cookieName)

	if key, ok := cs.Values[cookieKey].(string); ok {
		if qs, ok := s.registry.Lookup(key); ok {
			return qs, nil
		}
	}

	key, qs := s.registry.Create()
	cs.Values[cookieKey] = key
	if err := cs.Save(r, w); err != nil {
		return nil, err
	}
	return qs, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownTopic), errors.Is(err, session.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrConfigIncomplete),
		errors.Is(err, session.ErrSessionInProgress),
		errors.Is(err, session.ErrNoActiveQuestion),
		errors.Is(err, session.ErrSessionEnded):
		return http.StatusConflict
	case errors.Is(err, session.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, session.ErrGenerationExhausted), errors.Is(err, session.ErrGenerationFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
