// Package common contains shared constants and sentinel errors used across
// gophnotes components.
package common

// AuthTokenHeaderName is the HTTP header that carries the access token on
// requests to protected routes.
const AuthTokenHeaderName = "auth-token"

// DefaultNoteTag is applied to notes created without a tag.
const DefaultNoteTag = "general"
