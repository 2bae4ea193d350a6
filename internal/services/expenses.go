package services

import (
	"context"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

type ExpenseService struct {
	store  *storage.Store
	events events.Publisher
}

func NewExpenseService(store *storage.Store, pub events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, events: pub}
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// CategoryTags returns the expense's category tags, one per join row.
func (s *ExpenseService) CategoryTags(ctx context.Context, expenseID int64) ([]storage.CategoryTag, error) {
	return s.store.ListCategoryTagsByExpense(ctx, expenseID)
}

// Create validates the expense, then persists it together with one join row
// per category id in a single transaction.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense, categoryIDs []int64) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	created, err := s.store.CreateExpense(ctx, e, categoryIDs)
	if err != nil {
		return core.Expense{}, err
	}
	publish(ctx, s.events, events.EntityExpense, events.ActionCreated, created.ID)
	return created, nil
}

// Update fully replaces the expense's mutable fields. When replaceCategories
// is set, the existing join rows are dropped and recreated from categoryIDs.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense, categoryIDs []int64, replaceCategories bool) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateExpense(ctx, e, categoryIDs, replaceCategories); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityExpense, events.ActionUpdated, e.ID)
	return nil
}

// Delete removes the expense and every join row referencing it.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityExpense, events.ActionDeleted, id)
	return nil
}

// AddCategory tags the expense with one more category.
func (s *ExpenseService) AddCategory(ctx context.Context, expenseID, categoryID int64) (core.ExpenseCategory, error) {
	ec, err := s.store.CreateExpenseCategory(ctx, expenseID, categoryID)
	if err != nil {
		return core.ExpenseCategory{}, err
	}
	publish(ctx, s.events, events.EntityExpenseCategory, events.ActionCreated, ec.ID)
	return ec, nil
}

// RemoveCategory deletes a join row scoped by the owning expense, so a join
// row of a different expense reads as missing.
func (s *ExpenseService) RemoveCategory(ctx context.Context, joinID, expenseID int64) error {
	if err := s.store.DeleteExpenseCategoryOfExpense(ctx, joinID, expenseID); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityExpenseCategory, events.ActionDeleted, joinID)
	return nil
}
