package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/stretchr/testify/require"
)

const testSecret = "http-test-secret"

type fakeUsers struct {
	registerFn func(name, email, password string) (string, error)
	loginFn    func(email, password string) (string, error)
	getFn      func(userID string) (*models.User, error)
	updateFn   func(userID string, upd models.UserUpdate) (*models.User, error)
}

func (f *fakeUsers) Register(_ context.Context, name, email, password string) (string, error) {
	return f.registerFn(name, email, password)
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (string, error) {
	return f.loginFn(email, password)
}

func (f *fakeUsers) GetCurrentUser(_ context.Context, userID string) (*models.User, error) {
	return f.getFn(userID)
}

func (f *fakeUsers) UpdateCurrentUser(_ context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	return f.updateFn(userID, upd)
}

type fakeNotes struct {
	listFn   func(userID string) ([]*models.Note, error)
	addFn    func(userID string, in models.NoteInput) (*models.Note, error)
	updateFn func(noteID, userID string, upd models.NoteUpdate) (*models.Note, error)
	deleteFn func(noteID, userID string) (*models.Note, error)
	exportFn func(userID string) (string, error)
}

func (f *fakeNotes) List(_ context.Context, userID string) ([]*models.Note, error) {
	return f.listFn(userID)
}

func (f *fakeNotes) Add(_ context.Context, userID string, in models.NoteInput) (*models.Note, error) {
	return f.addFn(userID, in)
}

func (f *fakeNotes) Update(_ context.Context, noteID, userID string, upd models.NoteUpdate) (*models.Note, error) {
	return f.updateFn(noteID, userID, upd)
}

func (f *fakeNotes) Delete(_ context.Context, noteID, userID string) (*models.Note, error) {
	return f.deleteFn(noteID, userID)
}

func (f *fakeNotes) Export(_ context.Context, userID string) (string, error) {
	return f.exportFn(userID)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

var errBoom = errors.New("boom")

func newTestRouter(t *testing.T, o Options) http.Handler {
	t.Helper()
	if o.Users == nil {
		o.Users = &fakeUsers{}
	}
	if o.Notes == nil {
		o.Notes = &fakeNotes{}
	}
	o.SecretKey = testSecret
	o.Logger = logging.Nop{}
	return NewRouter(o).Handler()
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request; token may be empty.
func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("auth-token", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
