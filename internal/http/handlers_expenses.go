package http

import (
	"net/http"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

type expenseRequest struct {
	User        int64       `json:"user"`
	Name        string      `json:"name"`
	Amount      amountField `json:"amount"`
	Description string      `json:"description"`
	Date        dateField   `json:"date"`
	Trip        *int64      `json:"trip"`
	// Categories distinguishes absent (keep current tags on update) from
	// present-but-empty (clear them).
	Categories *[]int64 `json:"categories"`
}

func (req expenseRequest) toExpense(id int64) core.Expense {
	return core.Expense{
		ID:          id,
		Name:        req.Name,
		Amount:      core.Money{Cents: req.Amount.Cents},
		Description: req.Description,
		Date:        req.Date.Date,
		UserID:      req.User,
		TripID:      req.Trip,
	}
}

func (h *Handlers) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		v, err := h.buildExpenseView(r.Context(), e)
		if err != nil {
			handleError(w, r, err, "message")
			return
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.expenses.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	v, err := h.buildExpenseView(r.Context(), e)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var categoryIDs []int64
	if req.Categories != nil {
		categoryIDs = *req.Categories
	}

	created, err := h.expenses.Create(r.Context(), req.toExpense(0), categoryIDs)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	v, err := h.buildExpenseView(r.Context(), created)
	if err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// updateExpense fully replaces the mutable fields; a supplied categories list
// replaces every existing tag.
func (h *Handlers) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var categoryIDs []int64
	replace := req.Categories != nil
	if replace {
		categoryIDs = *req.Categories
	}

	if err := h.expenses.Update(r.Context(), req.toExpense(id), categoryIDs, replace); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.expenses.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type addCategoryRequest struct {
	Category int64 `json:"category"`
}

func (h *Handlers) addExpenseCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req addCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.expenses.AddCategory(r.Context(), id, req.Category); err != nil {
		handleError(w, r, err, "message")
		return
	}
	writeMessage(w, http.StatusCreated, "Category added to expense")
}

// removeExpenseCategory deletes a join row scoped by the owning expense: a
// join row id belonging to a different expense is a 404.
func (h *Handlers) removeExpenseCategory(w http.ResponseWriter, r *http.Request) {
	expenseID, err := pathID(r, "id")
	if err != nil {
		writeErrorKey(w, http.StatusBadRequest, err.Error())
		return
	}
	joinID, err := pathID(r, "expenseCategoryID")
	if err != nil {
		writeErrorKey(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.expenses.RemoveCategory(r.Context(), joinID, expenseID); err != nil {
		handleError(w, r, err, "error")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
