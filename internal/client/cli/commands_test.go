package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token string

	registered []string
	loginEmail string
	loginPass  string
	loginErr   error

	me      *models.User
	meErr   error
	upName  *string
	upEmail *string

	notes    []*models.Note
	listErr  error
	added    []string
	updateID string
	changes  models.NoteChanges
	deleted  string
	opErr    error

	exportURL string
}

func (f *fakeAPI) Token() string            { return f.token }
func (f *fakeAPI) SetToken(t string)        { f.token = t }
func (f *fakeAPI) HTTPClient() *http.Client { return http.DefaultClient }
func (f *fakeAPI) Register(ctx context.Context, name, email, password string) error {
	if f.opErr != nil {
		return f.opErr
	}
	f.registered = []string{name, email, password}
	f.token = "tok"
	return nil
}
func (f *fakeAPI) Login(ctx context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "tok"
	return nil
}
func (f *fakeAPI) Me(ctx context.Context) (*models.User, error) { return f.me, f.meErr }
func (f *fakeAPI) UpdateMe(ctx context.Context, name, email *string) (*models.User, error) {
	f.upName, f.upEmail = name, email
	if f.opErr != nil {
		return nil, f.opErr
	}
	u := *f.me
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	return &u, nil
}
func (f *fakeAPI) ListNotes(ctx context.Context) ([]*models.Note, error) {
	return f.notes, f.listErr
}
func (f *fakeAPI) AddNote(ctx context.Context, title, description, tag string) (*models.Note, error) {
	if f.opErr != nil {
		return nil, f.opErr
	}
	f.added = []string{title, description, tag}
	return &models.Note{ID: "n1", Title: title, Description: description, Tag: tag}, nil
}
func (f *fakeAPI) UpdateNote(ctx context.Context, id string, ch models.NoteChanges) (*models.Note, error) {
	if f.opErr != nil {
		return nil, f.opErr
	}
	f.updateID, f.changes = id, ch
	return &models.Note{ID: id, Title: "t"}, nil
}
func (f *fakeAPI) DeleteNote(ctx context.Context, id string) (*models.Note, error) {
	if f.opErr != nil {
		return nil, f.opErr
	}
	f.deleted = id
	return &models.Note{ID: id, Title: "gone"}, nil
}
func (f *fakeAPI) ExportNotes(ctx context.Context) (string, error) {
	return f.exportURL, f.opErr
}

func newTestApp(f *fakeAPI, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		config: &config.Config{ExportDir: "exports"},
		api:    f,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

var unauthorized = &api.APIError{StatusCode: http.StatusUnauthorized, Message: "Please authenticate using a valid token."}

func TestRegisterAndLogin(t *testing.T) {
	stubPassword(t, "hunter22")
	ctx := context.Background()

	f := &fakeAPI{}
	a, out := newTestApp(f, "Alice\nalice@example.com\n")
	require.NoError(t, a.Register(ctx))
	require.Equal(t, []string{"Alice", "alice@example.com", "hunter22"}, f.registered)
	require.Equal(t, "alice@example.com", a.userName)
	require.Contains(t, out.String(), "Registered and logged in.")

	f = &fakeAPI{}
	a, _ = newTestApp(f, "bob@example.com\n")
	require.NoError(t, a.Login(ctx))
	require.Equal(t, "bob@example.com", f.loginEmail)
	require.Equal(t, "hunter22", f.loginPass)
	require.True(t, a.isLoggedIn())
	require.Equal(t, "(bob@example.com)", a.getStatus())

	require.NoError(t, a.Logout(ctx))
	require.False(t, a.isLoggedIn())
	require.Equal(t, "", a.getStatus())
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "wrong")
	f := &fakeAPI{loginErr: &api.APIError{StatusCode: 400, Message: "Invalid credentials."}}
	a, _ := newTestApp(f, "bob@example.com\n")

	err := a.Login(context.Background())
	require.EqualError(t, err, "Invalid credentials.")
	require.False(t, a.isLoggedIn())
	require.Empty(t, a.userName)
}

func TestCommands_RequireLogin(t *testing.T) {
	a, _ := newTestApp(&fakeAPI{}, "")
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context) error{
		"whoami": a.WhoAmI,
		"rename": a.Rename,
		"list":   a.List,
		"add":    a.Add,
		"edit":   a.Edit,
		"delete": a.Delete,
		"export": a.Export,
	} {
		require.ErrorIs(t, fn(ctx), errNotLoggedIn, name)
	}
}

func TestWhoAmI(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeAPI{token: "tok", me: &models.User{Name: "Alice", Email: "alice@example.com", CreatedAt: created}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.WhoAmI(context.Background()))
	require.Contains(t, out.String(), "Alice <alice@example.com>")
	require.Equal(t, "alice@example.com", a.userName)
}

func TestUnauthorizedDropsSession(t *testing.T) {
	f := &fakeAPI{token: "tok", meErr: unauthorized}
	a, _ := newTestApp(f, "")
	a.userName = "alice@example.com"

	err := a.WhoAmI(context.Background())
	require.ErrorIs(t, err, errSessionExpired)
	require.Empty(t, f.token)
	require.Empty(t, a.userName)
}

func TestRename(t *testing.T) {
	f := &fakeAPI{token: "tok", me: &models.User{Name: "Alice", Email: "alice@example.com"}}
	a, out := newTestApp(f, "\nalice@new.example.com\n")

	require.NoError(t, a.Rename(context.Background()))
	require.Nil(t, f.upName)
	require.Equal(t, "alice@new.example.com", *f.upEmail)
	require.Equal(t, "alice@new.example.com", a.userName)
	require.Contains(t, out.String(), "Updated: Alice <alice@new.example.com>")
}

func TestRename_NothingToChange(t *testing.T) {
	f := &fakeAPI{token: "tok", me: &models.User{}}
	a, _ := newTestApp(f, "\n\n")

	require.Error(t, a.Rename(context.Background()))
	require.Nil(t, f.upName)
	require.Nil(t, f.upEmail)
}

func TestList(t *testing.T) {
	f := &fakeAPI{token: "tok"}
	a, out := newTestApp(f, "")
	require.NoError(t, a.List(context.Background()))
	require.Contains(t, out.String(), "No notes yet.")

	f.notes = []*models.Note{
		{ID: "n1", Title: "Groceries", Description: "milk", Tag: "home"},
		{ID: "n2", Title: "Work", Description: "report"},
	}
	out.Reset()
	require.NoError(t, a.List(context.Background()))
	require.Contains(t, out.String(), "[n1] Groceries #home")
	require.Contains(t, out.String(), "[n2] Work (")

	f.listErr = errors.New("boom")
	require.EqualError(t, a.List(context.Background()), "boom")
}

func TestAdd(t *testing.T) {
	f := &fakeAPI{token: "tok"}
	a, out := newTestApp(f, "Groceries\nmilk\neggs\n\n\n")

	require.NoError(t, a.Add(context.Background()))
	require.Equal(t, []string{"Groceries", "milk\neggs", ""}, f.added)
	require.Contains(t, out.String(), "Added: n1")
}

func TestAdd_ServerRejects(t *testing.T) {
	f := &fakeAPI{token: "tok", opErr: &api.APIError{StatusCode: 400, Message: "Title is required."}}
	a, _ := newTestApp(f, "\n\n\n")

	require.EqualError(t, a.Add(context.Background()), "Title is required.")
}

func TestEdit(t *testing.T) {
	f := &fakeAPI{token: "tok"}
	a, _ := newTestApp(f, "n1\nNew title\n\n-\n")

	require.NoError(t, a.Edit(context.Background()))
	require.Equal(t, "n1", f.updateID)
	require.Equal(t, "New title", *f.changes.Title)
	require.Nil(t, f.changes.Description)
	require.Equal(t, "", *f.changes.Tag)
}

func TestEdit_Errors(t *testing.T) {
	ctx := context.Background()

	a, _ := newTestApp(&fakeAPI{token: "tok"}, "\n")
	require.EqualError(t, a.Edit(ctx), "note ID is required")

	f := &fakeAPI{token: "tok"}
	a, _ = newTestApp(f, "n1\n\n\n\n")
	require.EqualError(t, a.Edit(ctx), "nothing to change")
	require.Empty(t, f.updateID)

	f = &fakeAPI{token: "tok", opErr: &api.APIError{StatusCode: 404, Message: "Note not found."}}
	a, _ = newTestApp(f, "n1\nx\n\n\n")
	require.EqualError(t, a.Edit(ctx), "Note not found.")
}

func TestDelete(t *testing.T) {
	f := &fakeAPI{token: "tok"}
	a, out := newTestApp(f, "n1\n")

	require.NoError(t, a.Delete(context.Background()))
	require.Equal(t, "n1", f.deleted)
	require.Contains(t, out.String(), "Deleted: gone")

	a, _ = newTestApp(f, "\n")
	require.Error(t, a.Delete(context.Background()))
}

func TestExport(t *testing.T) {
	chdirTest(t, t.TempDir())

	orig := downloadFn
	t.Cleanup(func() { downloadFn = orig })
	var gotURL string
	downloadFn = func(ctx context.Context, c *http.Client, url string) ([]byte, error) {
		gotURL = url
		return []byte(`[{"title":"Groceries"}]`), nil
	}

	f := &fakeAPI{token: "tok", exportURL: "https://s3.example.com/exports/x.json?sig=1"}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Export(context.Background()))
	require.Equal(t, f.exportURL, gotURL)

	files, err := filepath.Glob(filepath.Join("exports", "notes-*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.JSONEq(t, `[{"title":"Groceries"}]`, string(data))
	require.Contains(t, out.String(), "Saved to")
}

func TestExport_Errors(t *testing.T) {
	chdirTest(t, t.TempDir())
	ctx := context.Background()

	orig := downloadFn
	t.Cleanup(func() { downloadFn = orig })
	downloadFn = func(context.Context, *http.Client, string) ([]byte, error) {
		return nil, errors.New("network down")
	}

	a, _ := newTestApp(&fakeAPI{token: "tok", exportURL: "u"}, "")
	require.ErrorContains(t, a.Export(ctx), "network down")

	a, _ = newTestApp(&fakeAPI{token: "tok", opErr: errors.New("Export storage is not configured.")}, "")
	require.EqualError(t, a.Export(ctx), "Export storage is not configured.")

	_, err := os.Stat("exports")
	require.True(t, os.IsNotExist(err))
}

// chdirTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir for toolchains older than Go 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
