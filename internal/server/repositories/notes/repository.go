package notes

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Update(ctx context.Context, id string, upd models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id string) (*models.Note, error)
}
