// Package httpapi exposes the notes JSON API over HTTP using gorilla/mux.
// Every response uses the {status, message, ...payload} envelope.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// UserService is the account API the handlers depend on.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
	UpdateCurrentUser(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error)
}

// NoteService is the notes API the handlers depend on.
type NoteService interface {
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Add(ctx context.Context, userID string, in models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, noteID, userID string, upd models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, noteID, userID string) (*models.Note, error)
	Export(ctx context.Context, userID string) (string, error)
}

// Pinger reports storage reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Router struct {
	users     UserService
	notes     NoteService
	db        Pinger
	limiter   RateLimiter
	rateLimit int
	jwtSecret []byte
	logger    logging.Logger
	metrics   *metrics
}

// Options carries the router's collaborators. Limiter may be nil, which
// disables rate limiting; so does a non-positive RateLimitPerMinute.
type Options struct {
	Users              UserService
	Notes              NoteService
	DB                 Pinger
	Limiter            RateLimiter
	RateLimitPerMinute int
	SecretKey          string
	Logger             logging.Logger
}

func NewRouter(o Options) *Router {
	return &Router{
		users:     o.Users,
		notes:     o.Notes,
		db:        o.DB,
		limiter:   o.Limiter,
		rateLimit: o.RateLimitPerMinute,
		jwtSecret: []byte(o.SecretKey),
		logger:    o.Logger.With("module", "http_api"),
		metrics:   newMetrics(),
	}
}

// Handler builds the route table.
func (rt *Router) Handler() http.Handler {
	m := mux.NewRouter()
	m.Use(rt.observe)

	m.HandleFunc("/healthz", rt.handleHealth).Methods(http.MethodGet)
	m.Handle("/metrics", promhttp.HandlerFor(rt.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	m.HandleFunc("/register", rt.withRateLimit("/register", rt.handleRegister)).Methods(http.MethodPost)
	m.HandleFunc("/login", rt.withRateLimit("/login", rt.handleLogin)).Methods(http.MethodPost)

	protected := func(h http.HandlerFunc) http.Handler { return rt.authGuard(h) }

	m.Handle("/user", protected(rt.handleGetUser)).Methods(http.MethodGet)
	m.Handle("/user", protected(rt.handleUpdateUser)).Methods(http.MethodPatch)

	m.Handle("/notes", protected(rt.handleListNotes)).Methods(http.MethodGet)
	m.Handle("/notes", protected(rt.handleAddNote)).Methods(http.MethodPost)
	m.Handle("/notes/export", protected(rt.handleExportNotes)).Methods(http.MethodPost)
	m.Handle("/notes/{id}", protected(rt.handleUpdateNote)).Methods(http.MethodPatch)
	m.Handle("/notes/{id}", protected(rt.handleDeleteNote)).Methods(http.MethodDelete)

	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgRouteNotFound)
	})
	m.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
	})

	return m
}
