package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// NoteService implements note CRUD scoped to the calling user. Mutations
// check existence first and ownership second, inside one transaction.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	exporter    NoteExporter
	logger      logging.Logger
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, e NoteExporter, l logging.Logger) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		exporter:    e,
		logger:      l.With("module", "note_service"),
	}
}

// List returns the caller's notes in insertion order.
func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	list, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "error listing notes", err, "user_id", userID)
	}
	return list, nil
}

// Add creates a note owned by the caller.
func (s *NoteService) Add(ctx context.Context, userID string, in models.NoteInput) (*models.Note, error) {
	if !isPresent(in.Title) {
		return nil, common.NewValidationError(msgInvalidTitle)
	}
	if !isPresent(in.Description) {
		return nil, common.NewValidationError(msgInvalidDescription)
	}

	tag := common.DefaultNoteTag
	if in.Tag != nil && isPresent(*in.Tag) {
		tag = *in.Tag
	}

	note, err := s.repomanager.Notes(s.db).Create(ctx, &models.Note{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Tag:         tag,
	})
	if err != nil {
		return nil, s.internal(ctx, "error creating note", err, "user_id", userID)
	}

	return note, nil
}

// Update applies the supplied fields of upd to a note the caller owns.
func (s *NoteService) Update(ctx context.Context, noteID, userID string, upd models.NoteUpdate) (*models.Note, error) {
	note, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Note, error) {
		repo := s.repomanager.Notes(tx)

		if _, err := ownedNote(ctx, repo, noteID, userID); err != nil {
			return nil, err
		}

		if upd.IsEmpty() {
			return nil, common.NewValidationError(msgNothingToUpdate)
		}
		if upd.Title != nil && !isPresent(*upd.Title) {
			return nil, common.NewValidationError(msgInvalidTitle)
		}
		if upd.Description != nil && !isPresent(*upd.Description) {
			return nil, common.NewValidationError(msgInvalidDescription)
		}

		return repo.Update(ctx, noteID, upd)
	})
	if err != nil {
		return nil, s.translate(ctx, "error updating note", err, "note_id", noteID, "user_id", userID)
	}

	return note, nil
}

// Delete removes a note the caller owns and returns its last state.
func (s *NoteService) Delete(ctx context.Context, noteID, userID string) (*models.Note, error) {
	note, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Note, error) {
		repo := s.repomanager.Notes(tx)

		if _, err := ownedNote(ctx, repo, noteID, userID); err != nil {
			return nil, err
		}

		return repo.Delete(ctx, noteID)
	})
	if err != nil {
		return nil, s.translate(ctx, "error deleting note", err, "note_id", noteID, "user_id", userID)
	}

	return note, nil
}

// ownedNote loads the note and fails with ErrorNotFound when it is absent or
// ErrorForbidden when it belongs to someone else, in that order.
func ownedNote(ctx context.Context, repo notes.Repository, noteID, userID string) (*models.Note, error) {
	note, err := repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return note, nil
}

// translate passes domain errors through and collapses everything else into
// ErrorInternal after logging it.
func (s *NoteService) translate(ctx context.Context, msg string, err error, args ...any) error {
	if errors.Is(err, common.ErrorValidation) ||
		errors.Is(err, common.ErrorNotFound) ||
		errors.Is(err, common.ErrorForbidden) {
		return err
	}
	return s.internal(ctx, msg, err, args...)
}

func (s *NoteService) internal(ctx context.Context, msg string, err error, args ...any) error {
	s.logger.Error(ctx, msg, append(args, "error", err)...)
	return common.ErrorInternal
}
