// Package http exposes the REST API: CRUD resources for users, trips,
// expenses, categories and expense-category links, plus the check/register
// auth endpoints and service probes.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbvanyo/expense-tracker-server/internal/services"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

// Handlers holds the per-resource services the routes dispatch to.
type Handlers struct {
	users             *services.UserService
	trips             *services.TripService
	expenses          *services.ExpenseService
	categories        *services.CategoryService
	expenseCategories *services.ExpenseCategoryService
	store             *storage.Store
}

func NewHandlers(
	users *services.UserService,
	trips *services.TripService,
	expenses *services.ExpenseService,
	categories *services.CategoryService,
	expenseCategories *services.ExpenseCategoryService,
	store *storage.Store,
) *Handlers {
	return &Handlers{
		users:             users,
		trips:             trips,
		expenses:          expenses,
		categories:        categories,
		expenseCategories: expenseCategories,
		store:             store,
	}
}

type Server struct {
	http.Server
}

// NewServer configures all routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, h *Handlers) *Server {
	mux := http.NewServeMux()

	// Users and auth
	mux.HandleFunc("GET /users", h.listUsers)
	mux.HandleFunc("GET /users/{id}", h.getUser)
	mux.HandleFunc("GET /checkuser", h.checkUser)
	mux.HandleFunc("POST /register", h.registerUser)

	// Categories
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("POST /categories", h.createCategory)
	mux.HandleFunc("GET /categories/{id}", h.getCategory)
	mux.HandleFunc("PUT /categories/{id}", h.updateCategory)
	mux.HandleFunc("DELETE /categories/{id}", h.deleteCategory)

	// Expenses
	mux.HandleFunc("GET /expenses", h.listExpenses)
	mux.HandleFunc("POST /expenses", h.createExpense)
	mux.HandleFunc("GET /expenses/{id}", h.getExpense)
	mux.HandleFunc("PUT /expenses/{id}", h.updateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", h.deleteExpense)
	mux.HandleFunc("POST /expenses/{id}/add_expense_category", h.addExpenseCategory)
	mux.HandleFunc("DELETE /expenses/{id}/remove_expense_category/{expenseCategoryID}", h.removeExpenseCategory)

	// Trips
	mux.HandleFunc("GET /trips", h.listTrips)
	mux.HandleFunc("POST /trips", h.createTrip)
	mux.HandleFunc("GET /trips/{id}", h.getTrip)
	mux.HandleFunc("PUT /trips/{id}", h.updateTrip)
	mux.HandleFunc("DELETE /trips/{id}", h.deleteTrip)
	mux.HandleFunc("POST /trips/{id}/add_expense", h.addTripExpense)
	mux.HandleFunc("DELETE /trips/{id}/remove_trip_expense/{expenseID}", h.removeTripExpense)

	// Expense-category join resource
	mux.HandleFunc("GET /expensecategories", h.listExpenseCategories)
	mux.HandleFunc("POST /expensecategories", h.createExpenseCategory)
	mux.HandleFunc("GET /expensecategories/{id}", h.getExpenseCategory)
	mux.HandleFunc("PUT /expensecategories/{id}", h.updateExpenseCategory)
	mux.HandleFunc("DELETE /expensecategories/{id}", h.deleteExpenseCategory)

	// Probes and metrics
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", h.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: withLogging(withMetrics(mux)),
		},
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady pings the database before reporting ready.
func (h *Handlers) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
