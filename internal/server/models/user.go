package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"date"`
}

// UserUpdate lists profile fields to change. Nil means "leave as is".
type UserUpdate struct {
	Name  *string
	Email *string
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil
}
