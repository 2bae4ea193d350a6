package http

import (
	"context"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

// View builders produce the nested JSON read models. Expansion is explicit
// per builder rather than attached to the entity types: a trip expands its
// user and expenses, each expense its user and category tags, and a category
// tag stops at the category so the expense/category cycle is cut.

type userView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	UID  string `json:"uid"`
}

type categoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// categoryTagView is one join row as seen from its owning expense.
type categoryTagView struct {
	ID       int64        `json:"id"`
	Category categoryView `json:"category"`
}

type expenseView struct {
	ID          int64             `json:"id"`
	User        userView          `json:"user"`
	Name        string            `json:"name"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Trip        *int64            `json:"trip"`
	Categories  []categoryTagView `json:"categories"`
}

// expenseSummaryView is an expense without its category list, used inside
// expense-category resource payloads.
type expenseSummaryView struct {
	ID          int64    `json:"id"`
	User        userView `json:"user"`
	Name        string   `json:"name"`
	Amount      string   `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Trip        *int64   `json:"trip"`
}

type expenseCategoryView struct {
	ID       int64              `json:"id"`
	Expense  expenseSummaryView `json:"expense"`
	Category categoryView       `json:"category"`
}

// tripView is the three-level read model: user, expenses, and each expense's
// categories.
type tripView struct {
	ID          int64         `json:"id"`
	User        userView      `json:"user"`
	Name        string        `json:"name"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Expenses    []expenseView `json:"expenses"`
}

func buildUserView(u core.User) userView {
	return userView{ID: u.ID, Name: u.Name, UID: u.UID}
}

func buildCategoryView(c core.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name}
}

func (h *Handlers) buildExpenseSummary(ctx context.Context, e core.Expense) (expenseSummaryView, error) {
	owner, err := h.users.Get(ctx, e.UserID)
	if err != nil {
		return expenseSummaryView{}, err
	}
	return expenseSummaryView{
		ID:          e.ID,
		User:        buildUserView(owner),
		Name:        e.Name,
		Amount:      e.Amount.String(),
		Description: e.Description,
		Date:        e.Date.String(),
		Trip:        e.TripID,
	}, nil
}

func (h *Handlers) buildExpenseView(ctx context.Context, e core.Expense) (expenseView, error) {
	summary, err := h.buildExpenseSummary(ctx, e)
	if err != nil {
		return expenseView{}, err
	}

	tags, err := h.expenses.CategoryTags(ctx, e.ID)
	if err != nil {
		return expenseView{}, err
	}
	categories := make([]categoryTagView, 0, len(tags))
	for _, t := range tags {
		categories = append(categories, categoryTagView{
			ID:       t.JoinID,
			Category: buildCategoryView(t.Category),
		})
	}

	return expenseView{
		ID:          summary.ID,
		User:        summary.User,
		Name:        summary.Name,
		Amount:      summary.Amount,
		Description: summary.Description,
		Date:        summary.Date,
		Trip:        summary.Trip,
		Categories:  categories,
	}, nil
}

func (h *Handlers) buildTripView(ctx context.Context, t core.Trip) (tripView, error) {
	owner, err := h.users.Get(ctx, t.UserID)
	if err != nil {
		return tripView{}, err
	}

	expenses, err := h.trips.Expenses(ctx, t.ID)
	if err != nil {
		return tripView{}, err
	}
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		ev, err := h.buildExpenseView(ctx, e)
		if err != nil {
			return tripView{}, err
		}
		views = append(views, ev)
	}

	return tripView{
		ID:          t.ID,
		User:        buildUserView(owner),
		Name:        t.Name,
		Date:        t.Date.String(),
		Description: t.Description,
		Expenses:    views,
	}, nil
}

func (h *Handlers) buildExpenseCategoryView(ctx context.Context, ec core.ExpenseCategory) (expenseCategoryView, error) {
	expense, err := h.expenses.Get(ctx, ec.ExpenseID)
	if err != nil {
		return expenseCategoryView{}, err
	}
	summary, err := h.buildExpenseSummary(ctx, expense)
	if err != nil {
		return expenseCategoryView{}, err
	}
	category, err := h.categories.Get(ctx, ec.CategoryID)
	if err != nil {
		return expenseCategoryView{}, err
	}
	return expenseCategoryView{
		ID:       ec.ID,
		Expense:  summary,
		Category: buildCategoryView(category),
	}, nil
}
