package web

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:embed static/index.html
var indexHTML []byte

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

const cookieName = "erpview_session"

// Server serves the terminal front-end to a browser. Every websocket
// connection runs its own `erpview tui` process under a pty.
type Server struct {
	addr    string
	apiAddr string
	exe     string
	log     *logrus.Logger
	router  chi.Router

	mu       sync.Mutex
	sessions map[string]string // connection id -> browser session id
}

// NewServer creates a web terminal server whose TUI processes talk to the
// ERP backend at apiAddr.
func NewServer(addr, apiAddr string, log *logrus.Logger) (*Server, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:     addr,
		apiAddr:  apiAddr,
		exe:      exe,
		log:      log,
		router:   r,
		sessions: make(map[string]string),
	}

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)

	return s, nil
}

// sessionID reads or creates the browser session cookie.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil && uuidRe.MatchString(c.Value) {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sessionID(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.activeSessions(),
	})
}

func (s *Server) addSession(browserID string) string {
	connID := uuid.Must(uuid.NewV7()).String()
	s.mu.Lock()
	s.sessions[connID] = browserID
	s.mu.Unlock()
	return connID
}

func (s *Server) removeSession(connID string) {
	s.mu.Lock()
	delete(s.sessions, connID)
	s.mu.Unlock()
}

func (s *Server) activeSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the web terminal server.
func (s *Server) ListenAndServe() error {
	s.log.WithFields(logrus.Fields{"addr": s.addr, "api": s.apiAddr}).Info("web terminal listening")
	return http.ListenAndServe(s.addr, s.router)
}
