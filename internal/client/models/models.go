// Package models holds the client-side view of API resources.
package models

import (
	"fmt"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"date"`
}

type Note struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"date"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// String renders the note for terminal listings.
func (n Note) String() string {
	tag := ""
	if n.Tag != "" {
		tag = " #" + n.Tag
	}
	return fmt.Sprintf("[%s] %s%s (%s)\n    %s", n.ID, n.Title, tag, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Description)
}

// NoteChanges lists the fields to send in a partial update; nil fields are
// omitted from the request.
type NoteChanges struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty"`
}

func (c NoteChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Tag == nil
}
