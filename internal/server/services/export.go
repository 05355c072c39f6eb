package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

// NoteExporter stores export documents and hands out time-limited download
// links. objectstore.S3Store is the production implementation.
type NoteExporter interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type noteExport struct {
	UserID     string         `json:"user"`
	ExportedAt time.Time      `json:"exportedAt"`
	Notes      []*models.Note `json:"notes"`
}

// exportKey builds a unique object key grouped by user and day.
func exportKey(userID string, d time.Time) string {
	return fmt.Sprintf("exports/%s/%d/%02d/%02d/%v.json", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Export snapshots the caller's notes to object storage and returns a
// presigned download URL.
func (s *NoteService) Export(ctx context.Context, userID string) (string, error) {
	if s.exporter == nil {
		return "", s.internal(ctx, "note export is not configured", common.ErrorInternal, "user_id", userID)
	}

	list, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	body, err := json.Marshal(noteExport{UserID: userID, ExportedAt: now, Notes: list})
	if err != nil {
		return "", s.internal(ctx, "error encoding export", err, "user_id", userID)
	}

	key := exportKey(userID, now)
	if err := s.exporter.Upload(ctx, key, body, "application/json"); err != nil {
		return "", s.internal(ctx, "error uploading export", err, "user_id", userID, "key", key)
	}

	url, err := s.exporter.PresignGet(ctx, key)
	if err != nil {
		return "", s.internal(ctx, "error presigning export", err, "user_id", userID, "key", key)
	}

	s.logger.Info(ctx, "notes exported", "user_id", userID, "key", key, "count", len(list))

	return url, nil
}
