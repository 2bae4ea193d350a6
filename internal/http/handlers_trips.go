package http

import (
	"net/http"
	"strconv"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

type tripRequest struct {
	User        int64     `json:"user"`
	Name        string    `json:"name"`
	Date        dateField `json:"date"`
	Description string    `json:"description"`
}

func (h *Handlers) listTrips(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid userId")
			return
		}
		userID = &id
	}

	trips, err := h.trips.List(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	views := make([]tripView, 0, len(trips))
	for _, t := range trips {
		v, err := h.buildTripView(r.Context(), t)
		if err != nil {
			handleError(w, r, err, "message")
			return
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.trips.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	v, err := h.buildTripView(r.Context(), t)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.trips.Create(r.Context(), core.Trip{
		Name:        req.Name,
		Date:        req.Date.Date,
		Description: req.Description,
		UserID:      req.User,
	})
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	v, err := h.buildTripView(r.Context(), created)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// updateTrip renames the trip; date, description and owner are fixed at
// creation.
func (h *Handlers) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.trips.Update(r.Context(), id, req.Name); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// deleteTrip removes the trip together with every expense attached to it.
func (h *Handlers) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.trips.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type addExpenseRequest struct {
	Expense int64 `json:"expense"`
}

func (h *Handlers) addTripExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		writeErrorKey(w, http.StatusBadRequest, err.Error())
		return
	}
	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorKey(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.trips.AttachExpense(r.Context(), tripID, req.Expense); err != nil {
		handleError(w, r, err, "error")
		return
	}
	writeMessage(w, http.StatusCreated, "Expense added to trip")
}

func (h *Handlers) removeTripExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		writeErrorKey(w, http.StatusBadRequest, err.Error())
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		writeErrorKey(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.trips.DetachExpense(r.Context(), tripID, expenseID); err != nil {
		handleError(w, r, err, "error")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
