package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

var (
	errNotLoggedIn    = errors.New("please log in first")
	errSessionExpired = errors.New("session expired, please log in again")
)

// apiClient is the subset of api.Client the commands use.
type apiClient interface {
	Token() string
	SetToken(t string)
	HTTPClient() *http.Client
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) error
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, name, email *string) (*models.User, error)
	ListNotes(ctx context.Context) ([]*models.Note, error)
	AddNote(ctx context.Context, title, description, tag string) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, ch models.NoteChanges) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) (*models.Note, error)
	ExportNotes(ctx context.Context) (string, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

// requireLogin fails fast instead of letting the server answer 401.
func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// check drops the session when the server no longer accepts the token.
func (a *App) check(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		a.api.SetToken("")
		a.userName = ""
		return errSessionExpired
	}
	return err
}
