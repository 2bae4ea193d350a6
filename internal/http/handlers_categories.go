package http

import (
	"net/http"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, buildCategoryView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, buildCategoryView(c))
}

func (h *Handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.categories.Create(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusCreated, buildCategoryView(c))
}

func (h *Handlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.categories.Update(r.Context(), id, req.Name); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// deleteCategory is unconditional: join rows referencing the category are
// cascaded, no check blocks the delete.
func (h *Handlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
