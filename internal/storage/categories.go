package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

// CreateCategory inserts a new category. Names are not unique.
func (s *Store) CreateCategory(ctx context.Context, name string) (core.Category, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category insert id: %w", err)
	}
	return core.Category{ID: id, Name: name}, nil
}

// GetCategory retrieves a category by primary key.
func (s *Store) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	return getCategory(ctx, s.db, id)
}

func getCategory(ctx context.Context, q querier, id int64) (core.Category, error) {
	var c core.Category
	err := q.QueryRowContext(ctx,
		"SELECT id, name FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return core.Category{}, notFound("Category")
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by primary key.
func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory replaces the category's name.
func (s *Store) UpdateCategory(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category rows affected: %w", err)
	}
	if n == 0 {
		return notFound("Category")
	}
	return nil
}

// DeleteCategory deletes a category unconditionally. Join rows referencing it
// are removed in the same transaction.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getCategory(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM expense_categories WHERE category_id = ?", id); err != nil {
			return fmt.Errorf("delete category join rows: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM categories WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
