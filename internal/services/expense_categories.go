package services

import (
	"context"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

type ExpenseCategoryService struct {
	store  *storage.Store
	events events.Publisher
}

func NewExpenseCategoryService(store *storage.Store, pub events.Publisher) *ExpenseCategoryService {
	return &ExpenseCategoryService{store: store, events: pub}
}

func (s *ExpenseCategoryService) Get(ctx context.Context, id int64) (core.ExpenseCategory, error) {
	return s.store.GetExpenseCategory(ctx, id)
}

func (s *ExpenseCategoryService) List(ctx context.Context) ([]core.ExpenseCategory, error) {
	return s.store.ListExpenseCategories(ctx)
}

// Create links an expense to a category. Both must exist; the expense is
// checked first. Duplicate pairs produce distinct rows.
func (s *ExpenseCategoryService) Create(ctx context.Context, expenseID, categoryID int64) (core.ExpenseCategory, error) {
	ec, err := s.store.CreateExpenseCategory(ctx, expenseID, categoryID)
	if err != nil {
		return core.ExpenseCategory{}, err
	}
	publish(ctx, s.events, events.EntityExpenseCategory, events.ActionCreated, ec.ID)
	return ec, nil
}

func (s *ExpenseCategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpenseCategory(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityExpenseCategory, events.ActionDeleted, id)
	return nil
}
