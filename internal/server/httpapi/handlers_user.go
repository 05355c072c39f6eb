package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := rt.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		rt.writeServiceError(w, r, err, msgUserNotFound)
		return
	}

	writeSuccess(w, msgRegistered, map[string]any{"authToken": token})
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := rt.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		rt.writeServiceError(w, r, err, msgUserNotFound)
		return
	}

	writeSuccess(w, msgLoggedIn, map[string]any{"authToken": token})
}

func (rt *Router) handleGetUser(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())

	user, err := rt.users.GetCurrentUser(r.Context(), c.ID)
	if err != nil {
		rt.writeServiceError(w, r, err, msgUserNotFound)
		return
	}

	writeSuccess(w, msgFetchedUser, map[string]any{"user": user})
}

func (rt *Router) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFromContext(r.Context())

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := rt.users.UpdateCurrentUser(r.Context(), c.ID, models.UserUpdate{Name: req.Name, Email: req.Email})
	if err != nil {
		rt.writeServiceError(w, r, err, msgUserNotFound)
		return
	}

	writeSuccess(w, msgUpdatedUser, map[string]any{"user": user})
}
