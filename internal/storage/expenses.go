package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

const expenseColumns = "id, name, amount_cents, description, date, user_id, trip_id"

func scanExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e      core.Expense
		date   string
		tripID sql.NullInt64
	)
	if err := scan(&e.ID, &e.Name, &e.Amount.Cents, &e.Description, &date, &e.UserID, &tripID); err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored expense date %q: %w", date, err)
	}
	e.Date = d
	if tripID.Valid {
		e.TripID = &tripID.Int64
	}
	return e, nil
}

func nullableTripID(e core.Expense) any {
	if e.TripID == nil {
		return nil
	}
	return *e.TripID
}

// CreateExpense inserts an expense and a join row per category id, verifying
// the owning user, the optional trip, and every category inside one
// transaction.
func (s *Store) CreateExpense(ctx context.Context, e core.Expense, categoryIDs []int64) (core.Expense, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getUser(ctx, tx, e.UserID); err != nil {
			return err
		}
		if e.TripID != nil {
			ok, err := exists(ctx, tx, "trips", *e.TripID)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("Trip")
			}
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (name, amount_cents, description, date, user_id, trip_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.Name, e.Amount.Cents, e.Description, e.Date.String(), e.UserID, nullableTripID(e))
		if err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("expense insert id: %w", err)
		}
		e.ID = id

		return insertJoinRows(ctx, tx, id, categoryIDs)
	})
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// insertJoinRows creates one expense_categories row per category id, checking
// each category exists. Duplicate ids produce duplicate rows.
func insertJoinRows(ctx context.Context, tx *sql.Tx, expenseID int64, categoryIDs []int64) error {
	for _, cid := range categoryIDs {
		ok, err := exists(ctx, tx, "categories", cid)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Category")
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_categories (expense_id, category_id) VALUES (?, ?)",
			expenseID, cid); err != nil {
			return fmt.Errorf("insert expense category: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by primary key.
func (s *Store) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return getExpense(ctx, s.db, id)
}

func getExpense(ctx context.Context, q querier, id int64) (core.Expense, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	e, err := scanExpense(row.Scan)
	if err == sql.ErrNoRows {
		return core.Expense{}, notFound("Expense")
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListExpenses returns all expenses ordered by primary key.
func (s *Store) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY id")
}

// ListExpensesByTrip returns the expenses attached to a trip.
func (s *Store) ListExpensesByTrip(ctx context.Context, tripID int64) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE trip_id = ? ORDER BY id", tripID)
}

func (s *Store) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense replaces the expense's mutable fields. When replaceCategories
// is true every existing join row is deleted and recreated from categoryIDs
// (full replace, not a diff), all inside one transaction.
func (s *Store) UpdateExpense(ctx context.Context, e core.Expense, categoryIDs []int64, replaceCategories bool) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getExpense(ctx, tx, e.ID); err != nil {
			return err
		}
		if _, err := getUser(ctx, tx, e.UserID); err != nil {
			return err
		}
		if e.TripID != nil {
			ok, err := exists(ctx, tx, "trips", *e.TripID)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("Trip")
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE expenses
			 SET name = ?, amount_cents = ?, description = ?, date = ?, user_id = ?, trip_id = ?
			 WHERE id = ?`,
			e.Name, e.Amount.Cents, e.Description, e.Date.String(), e.UserID, nullableTripID(e), e.ID); err != nil {
			return fmt.Errorf("update expense: %w", err)
		}

		if !replaceCategories {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM expense_categories WHERE expense_id = ?", e.ID); err != nil {
			return fmt.Errorf("clear expense categories: %w", err)
		}
		return insertJoinRows(ctx, tx, e.ID, categoryIDs)
	})
}

// DeleteExpense removes the expense's join rows and then the expense itself.
// The explicit join-row delete keeps the cascade independent of the
// foreign_keys pragma.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return deleteExpense(ctx, tx, id)
	})
}

func deleteExpense(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := getExpense(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_categories WHERE expense_id = ?", id); err != nil {
		return fmt.Errorf("delete expense join rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// CategoryTag pairs a join-row id with the category it points at, for the
// expanded category list of an expense.
type CategoryTag struct {
	JoinID   int64
	Category core.Category
}

// ListCategoryTagsByExpense returns the categories tagged on an expense,
// one entry per join row (duplicates included).
func (s *Store) ListCategoryTagsByExpense(ctx context.Context, expenseID int64) ([]CategoryTag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ec.id, c.id, c.name
		 FROM expense_categories ec
		 JOIN categories c ON c.id = ec.category_id
		 WHERE ec.expense_id = ?
		 ORDER BY ec.id`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("list category tags: %w", err)
	}
	defer rows.Close()

	var tags []CategoryTag
	for rows.Next() {
		var t CategoryTag
		if err := rows.Scan(&t.JoinID, &t.Category.ID, &t.Category.Name); err != nil {
			return nil, fmt.Errorf("scan category tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category tags: %w", err)
	}
	return tags, nil
}
