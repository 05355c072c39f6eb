package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type addNoteRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tag         *string `json:"tag"`
}

// updateNoteRequest keeps absent fields nil; "tag": "" is a real value.
type updateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
}

func (rt *Router) handleListNotes(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())

	list, err := rt.notes.List(r.Context(), c.ID)
	if err != nil {
		rt.writeServiceError(w, r, err, msgNoteNotFound)
		return
	}
	if list == nil {
		list = []*models.Note{}
	}

	writeSuccess(w, msgFetchedNotes, map[string]any{"notes": list})
}

func (rt *Router) handleAddNote(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())

	var req addNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	note, err := rt.notes.Add(r.Context(), c.ID, models.NoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		rt.writeServiceError(w, r, err, msgNoteNotFound)
		return
	}

	writeSuccess(w, msgAddedNote, map[string]any{"note": note})
}

func (rt *Router) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())
	noteID := mux.Vars(r)["id"]

	var req updateNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	note, err := rt.notes.Update(r.Context(), noteID, c.ID, models.NoteUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		rt.writeServiceError(w, r, err, msgNoteNotFound)
		return
	}

	writeSuccess(w, msgUpdatedNote, map[string]any{"note": note})
}

func (rt *Router) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())

	note, err := rt.notes.Delete(r.Context(), mux.Vars(r)["id"], c.ID)
	if err != nil {
		rt.writeServiceError(w, r, err, msgNoteNotFound)
		return
	}

	writeSuccess(w, msgDeletedNote, map[string]any{"note": note})
}

func (rt *Router) handleExportNotes(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())

	url, err := rt.notes.Export(r.Context(), c.ID)
	if err != nil {
		rt.writeServiceError(w, r, err, msgNoteNotFound)
		return
	}

	writeSuccess(w, msgExported, map[string]any{"url": url})
}
