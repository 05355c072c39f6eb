package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	notesrepo "github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
)

const testSecret = "test-secret"

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	users  map[string]*models.User
	nextID int

	lookupErr  error
	getByIDErr error
	createErr  error
	updateErr  error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	return u, nil
}

// --- notes ---

type fakeNotesRepo struct {
	notes  map[string]*models.Note
	order  []string
	nextID int

	listErr   error
	createErr error
	getErr    error
	updateErr error
	deleteErr error
}

func newFakeNotesRepo(notes ...*models.Note) *fakeNotesRepo {
	r := &fakeNotesRepo{notes: map[string]*models.Note{}}
	for _, n := range notes {
		r.notes[n.ID] = n
		r.order = append(r.order, n.ID)
	}
	return r
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	n.ID = fmt.Sprintf("n-%d", f.nextID)
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	f.notes[n.ID] = n
	f.order = append(f.order, n.ID)
	return n, nil
}

func (f *fakeNotesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Note, 0)
	for _, id := range f.order {
		if n, ok := f.notes[id]; ok && n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return n, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, id string, upd models.NoteUpdate) (*models.Note, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Description != nil {
		n.Description = *upd.Description
	}
	if upd.Tag != nil {
		n.Tag = *upd.Tag
	}
	n.UpdatedAt = time.Now()
	return n, nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id string) (*models.Note, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.notes, id)
	return n, nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository       { return m.n }

// --- hasher ---

type fakeHasher struct {
	hashErr     error
	verifyCalls int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, hash string) bool {
	h.verifyCalls++
	return strings.TrimPrefix(hash, "hashed:") == plain && strings.HasPrefix(hash, "hashed:")
}

// --- exporter ---

type fakeExporter struct {
	uploadErr  error
	presignErr error

	key         string
	body        []byte
	contentType string
}

func (e *fakeExporter) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	if e.uploadErr != nil {
		return e.uploadErr
	}
	e.key, e.body, e.contentType = key, body, contentType
	return nil
}

func (e *fakeExporter) PresignGet(ctx context.Context, key string) (string, error) {
	if e.presignErr != nil {
		return "", e.presignErr
	}
	return "https://s3.local/notes/" + key + "?X-Amz-Signature=sig", nil
}

// --- constructors ---

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager, h *fakeHasher) *UserService {
	t.Helper()
	cfg := &config.Config{SecretKey: testSecret, AccessTokenValidityDuration: time.Hour}
	return NewUserService(db, rm, h, logging.Nop{}, cfg)
}

func newNoteService(t *testing.T, db *sql.DB, rm *fakeRepoManager, e NoteExporter) *NoteService {
	t.Helper()
	return NewNoteService(db, rm, e, logging.Nop{})
}

func ptr(s string) *string { return &s }
