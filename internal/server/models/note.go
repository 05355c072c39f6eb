// Package models holds the server-side domain types shared by repositories,
// services and the HTTP layer.
package models

import "time"

// Note is a text note owned by exactly one user.
type Note struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"date"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NoteInput is the payload for creating a note. A nil or blank Tag falls
// back to the default tag.
type NoteInput struct {
	Title       string
	Description string
	Tag         *string
}

// NoteUpdate lists the fields to change. Nil means "not supplied"; a
// non-nil pointer to an empty string is a real value.
type NoteUpdate struct {
	Title       *string
	Description *string
	Tag         *string
}

func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Tag == nil
}
