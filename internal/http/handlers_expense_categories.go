package http

import (
	"net/http"
)

type expenseCategoryRequest struct {
	Expense  int64 `json:"expense"`
	Category int64 `json:"category"`
}

func (h *Handlers) listExpenseCategories(w http.ResponseWriter, r *http.Request) {
	links, err := h.expenseCategories.List(r.Context())
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	views := make([]expenseCategoryView, 0, len(links))
	for _, ec := range links {
		v, err := h.buildExpenseCategoryView(r.Context(), ec)
		if err != nil {
			handleError(w, r, err, "message")
			return
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getExpenseCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	ec, err := h.expenseCategories.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	v, err := h.buildExpenseCategoryView(r.Context(), ec)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) createExpenseCategory(w http.ResponseWriter, r *http.Request) {
	var req expenseCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	ec, err := h.expenseCategories.Create(r.Context(), req.Expense, req.Category)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	v, err := h.buildExpenseCategoryView(r.Context(), ec)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// updateExpenseCategory always rejects: a link row is immutable, delete and
// recreate instead.
func (h *Handlers) updateExpenseCategory(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusBadRequest, "Not supported")
}

func (h *Handlers) deleteExpenseCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.expenseCategories.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
