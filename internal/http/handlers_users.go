package http

import (
	"net/http"
)

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, buildUserView(u))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, buildUserView(u))
}

// checkUser reports whether a user exists for the external uid. It never
// creates one; registration is its own endpoint.
func (h *Handlers) checkUser(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		writeMessage(w, http.StatusBadRequest, "uid is required")
		return
	}
	u, err := h.users.Check(r.Context(), uid)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, buildUserView(u))
}

type registerRequest struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// registerUser creates a user for the uid, or returns the existing one:
// registration is idempotent per external uid.
func (h *Handlers) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	u, created, err := h.users.Register(r.Context(), req.UID, req.Name)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, buildUserView(u))
}
