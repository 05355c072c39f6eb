// Package notes is the note store. It performs no ownership checks; callers
// compare Note.UserID with the caller before mutating.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const noteColumns = `id, user_id, title, description, tag, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	n := &models.Note{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (user_id, title, description, tag)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + noteColumns

	n, err := scanNote(r.db.QueryRowContext(ctx, query, note.UserID, note.Title, note.Description, note.Tag))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// ListByUser returns the user's notes in insertion order. The result is
// never nil.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	query :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		if dbx.IsInvalidTextRepresentation(err) {
			return []*models.Note{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// GetByID loads a note and locks its row until the surrounding transaction
// ends. Outside a transaction the lock is released immediately.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE id = $1
		 FOR UPDATE`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return n, nil
}

// Update writes the non-nil fields of upd and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.NoteUpdate) (*models.Note, error) {
	query :=
		`UPDATE notes SET
		   title = COALESCE($2, title),
		   description = COALESCE($3, description),
		   tag = COALESCE($4, tag),
		   updated_at = now()
		 WHERE id = $1
		 RETURNING ` + noteColumns

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id, nullable(upd.Title), nullable(upd.Description), nullable(upd.Tag)))
	if err != nil {
		return nil, mapError(err)
	}

	return n, nil
}

// Delete removes a note and returns its last state.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`DELETE FROM notes
		 WHERE id = $1
		 RETURNING ` + noteColumns

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return n, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
