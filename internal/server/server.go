package server

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/logging"
	"github.com/simonvc/erpview/internal/store"
	"github.com/sirupsen/logrus"
)

// LineSource fetches a fresh set of transaction lines from the ERP backend.
type LineSource interface {
	TransactionLines(ctx context.Context) ([]ledger.TransactionLine, error)
}

// SnapshotStore is the subset of the snapshot archive the API serves.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, label, source string, lines []ledger.TransactionLine) (*store.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]store.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*store.Snapshot, error)
	LoadSnapshot(ctx context.Context, id string) ([]ledger.TransactionLine, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

type Server struct {
	lines  LineSource
	snaps  SnapshotStore
	source string
	log    *logrus.Logger
	router chi.Router
	addr   string

	corsOrigins []string
}

type Option func(*Server)

// WithCORS lets browsers on the given origins call the API.
func WithCORS(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// New builds the ledger view API. snaps may be nil, in which case snapshot
// routes answer 404.
func New(lines LineSource, snaps SnapshotStore, source string, log *logrus.Logger, addr string, opts ...Option) *Server {
	r := chi.NewRouter()
	s := &Server{lines: lines, snaps: snaps, source: source, log: log, router: r, addr: addr}
	for _, o := range opts {
		o(s)
	}

	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ledger", logging.Wrap("ledger", log, s.ledgerView))
		r.Get("/ledger/options", logging.Wrap("ledger_options", log, s.ledgerOptions))

		r.Get("/snapshots", logging.Wrap("list_snapshots", log, s.listSnapshots))
		r.Post("/snapshots", logging.Wrap("create_snapshot", log, s.createSnapshot))
		r.Get("/snapshots/{id}", logging.Wrap("get_snapshot", log, s.getSnapshot))
		r.Delete("/snapshots/{id}", logging.Wrap("delete_snapshot", log, s.deleteSnapshot))
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.addr).Info("erpview api listening")
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.WithField("addr", ln.Addr().String()).Info("erpview api listening")
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
