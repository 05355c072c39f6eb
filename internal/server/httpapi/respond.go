package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// Response messages.
const (
	msgUnauthorized    = "Unauthorized access restricted."
	msgInternal        = "Some internal error occurred."
	msgInvalidBody     = "Invalid request body."
	msgNoteNotFound    = "Note with the given ID not found."
	msgUserNotFound    = "User not found."
	msgTooManyRequests = "Too many requests, try again later."
	msgRouteNotFound   = "Resource not found."
	msgMethodNotAllow  = "Method not allowed."

	msgRegistered   = "Registered successfully."
	msgLoggedIn     = "Logged in successfully."
	msgFetchedUser  = "Fetched user successfully."
	msgUpdatedUser  = "Updated user successfully."
	msgFetchedNotes = "Fetched notes successfully."
	msgAddedNote    = "Added note successfully."
	msgUpdatedNote  = "Successfully updated the note."
	msgDeletedNote  = "Successfully deleted the note."
	msgExported     = "Exported notes successfully."
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeSuccess merges payload into the {status, message} envelope.
func writeSuccess(w http.ResponseWriter, msg string, payload map[string]any) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["status"] = statusSuccess
	body["message"] = msg
	writeJSON(w, http.StatusOK, body)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": statusError, "message": msg})
}

// writeServiceError maps a service error onto a status code. Forbidden is
// reported exactly like Unauthorized so callers cannot probe ownership.
func (rt *Router) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		rt.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
