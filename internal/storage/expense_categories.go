package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

// CreateExpenseCategory inserts a join row, verifying the expense first and
// then the category so the 404 names whichever is missing. Duplicate pairs
// are permitted.
func (s *Store) CreateExpenseCategory(ctx context.Context, expenseID, categoryID int64) (core.ExpenseCategory, error) {
	var ec core.ExpenseCategory
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "expenses", expenseID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Expense")
		}
		ok, err = exists(ctx, tx, "categories", categoryID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Category")
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO expense_categories (expense_id, category_id) VALUES (?, ?)",
			expenseID, categoryID)
		if err != nil {
			return fmt.Errorf("insert expense category: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("expense category insert id: %w", err)
		}
		ec = core.ExpenseCategory{ID: id, ExpenseID: expenseID, CategoryID: categoryID}
		return nil
	})
	if err != nil {
		return core.ExpenseCategory{}, err
	}
	return ec, nil
}

// GetExpenseCategory retrieves a join row by primary key.
func (s *Store) GetExpenseCategory(ctx context.Context, id int64) (core.ExpenseCategory, error) {
	var ec core.ExpenseCategory
	err := s.db.QueryRowContext(ctx,
		"SELECT id, expense_id, category_id FROM expense_categories WHERE id = ?", id).
		Scan(&ec.ID, &ec.ExpenseID, &ec.CategoryID)
	if err == sql.ErrNoRows {
		return core.ExpenseCategory{}, notFound("Expense category")
	}
	if err != nil {
		return core.ExpenseCategory{}, fmt.Errorf("get expense category: %w", err)
	}
	return ec, nil
}

// ListExpenseCategories returns all join rows ordered by primary key.
func (s *Store) ListExpenseCategories(ctx context.Context) ([]core.ExpenseCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, category_id FROM expense_categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}
	defer rows.Close()

	var ecs []core.ExpenseCategory
	for rows.Next() {
		var ec core.ExpenseCategory
		if err := rows.Scan(&ec.ID, &ec.ExpenseID, &ec.CategoryID); err != nil {
			return nil, fmt.Errorf("scan expense category: %w", err)
		}
		ecs = append(ecs, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense categories: %w", err)
	}
	return ecs, nil
}

// DeleteExpenseCategory deletes a join row by primary key.
func (s *Store) DeleteExpenseCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expense_categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense category rows affected: %w", err)
	}
	if n == 0 {
		return notFound("Expense category")
	}
	return nil
}

// DeleteExpenseCategoryOfExpense deletes a join row scoped by both its own id
// and the owning expense id, so a join row belonging to a different expense
// reads as missing.
func (s *Store) DeleteExpenseCategoryOfExpense(ctx context.Context, id, expenseID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expense_categories WHERE id = ? AND expense_id = ?", id, expenseID)
	if err != nil {
		return fmt.Errorf("delete expense category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense category rows affected: %w", err)
	}
	if n == 0 {
		return notFound("Expense category")
	}
	return nil
}
