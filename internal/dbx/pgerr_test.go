package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassifiers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	invalid := &pgconn.PgError{Code: "22P02"}
	fk := &pgconn.PgError{Code: "23503"}
	plain := errors.New("boom")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(invalid))
	assert.False(t, IsUniqueViolation(plain))

	assert.True(t, IsInvalidTextRepresentation(invalid))
	assert.False(t, IsInvalidTextRepresentation(unique))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(nil))
}
