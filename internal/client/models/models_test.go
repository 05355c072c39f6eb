package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteString(t *testing.T) {
	n := Note{ID: "n1", Title: "groceries", Description: "milk", Tag: "home", CreatedAt: time.Now()}
	s := n.String()
	assert.True(t, strings.HasPrefix(s, "[n1] groceries #home ("))
	assert.True(t, strings.HasSuffix(s, "\n    milk"))

	n.Tag = ""
	assert.NotContains(t, n.String(), "#")
}

func TestNoteChanges_OmitsUnsetButKeepsEmpty(t *testing.T) {
	empty := ""
	b, err := json.Marshal(NoteChanges{Tag: &empty})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":""}`, string(b))

	assert.True(t, NoteChanges{}.IsEmpty())
	assert.False(t, NoteChanges{Tag: &empty}.IsEmpty())
}
