package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

// CreateTrip inserts a trip after verifying the owning user exists.
func (s *Store) CreateTrip(ctx context.Context, t core.Trip) (core.Trip, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getUser(ctx, tx, t.UserID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO trips (name, date, description, user_id) VALUES (?, ?, ?, ?)",
			t.Name, t.Date.String(), t.Description, t.UserID)
		if err != nil {
			return fmt.Errorf("insert trip: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("trip insert id: %w", err)
		}
		t.ID = id
		return nil
	})
	if err != nil {
		return core.Trip{}, err
	}
	return t, nil
}

// GetTrip retrieves a trip by primary key.
func (s *Store) GetTrip(ctx context.Context, id int64) (core.Trip, error) {
	return getTrip(ctx, s.db, id)
}

func getTrip(ctx context.Context, q querier, id int64) (core.Trip, error) {
	var (
		t    core.Trip
		date string
	)
	err := q.QueryRowContext(ctx,
		"SELECT id, name, date, description, user_id FROM trips WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &date, &t.Description, &t.UserID)
	if err == sql.ErrNoRows {
		return core.Trip{}, notFound("Trip")
	}
	if err != nil {
		return core.Trip{}, fmt.Errorf("get trip: %w", err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Trip{}, fmt.Errorf("stored trip date %q: %w", date, err)
	}
	t.Date = d
	return t, nil
}

// ListTrips returns all trips, optionally filtered by owning user when
// userID is non-nil, ordered by primary key.
func (s *Store) ListTrips(ctx context.Context, userID *int64) ([]core.Trip, error) {
	query := "SELECT id, name, date, description, user_id FROM trips"
	var args []any
	if userID != nil {
		query += " WHERE user_id = ?"
		args = append(args, *userID)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []core.Trip
	for rows.Next() {
		var (
			t    core.Trip
			date string
		)
		if err := rows.Scan(&t.ID, &t.Name, &date, &t.Description, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("stored trip date %q: %w", date, err)
		}
		t.Date = d
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

// UpdateTrip replaces the trip's name.
func (s *Store) UpdateTrip(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE trips SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trip rows affected: %w", err)
	}
	if n == 0 {
		return notFound("Trip")
	}
	return nil
}

// DeleteTrip deletes every expense owned by the trip (each cascading its join
// rows) and then the trip itself, in one transaction. Expenses are deleted
// first so none are left referencing a deleted trip.
func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getTrip(ctx, tx, id); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			"SELECT id FROM expenses WHERE trip_id = ?", id)
		if err != nil {
			return fmt.Errorf("list trip expenses: %w", err)
		}
		var expenseIDs []int64
		for rows.Next() {
			var eid int64
			if err := rows.Scan(&eid); err != nil {
				rows.Close()
				return fmt.Errorf("scan trip expense id: %w", err)
			}
			expenseIDs = append(expenseIDs, eid)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterate trip expense ids: %w", err)
		}
		rows.Close()

		for _, eid := range expenseIDs {
			if err := deleteExpense(ctx, tx, eid); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete trip: %w", err)
		}
		return nil
	})
}

// AttachExpense sets the expense's trip foreign key. The expense is looked up
// before the trip so a missing expense is reported first.
func (s *Store) AttachExpense(ctx context.Context, tripID, expenseID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getExpense(ctx, tx, expenseID); err != nil {
			return err
		}
		if _, err := getTrip(ctx, tx, tripID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE expenses SET trip_id = ? WHERE id = ?", tripID, expenseID); err != nil {
			return fmt.Errorf("attach expense to trip: %w", err)
		}
		return nil
	})
}

// DetachExpense clears the expense's trip foreign key. It fails with
// ErrNotAssociated when the expense is not currently attached to the trip.
func (s *Store) DetachExpense(ctx context.Context, tripID, expenseID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getTrip(ctx, tx, tripID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"UPDATE expenses SET trip_id = NULL WHERE id = ? AND trip_id = ?",
			expenseID, tripID)
		if err != nil {
			return fmt.Errorf("detach expense from trip: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("detach expense rows affected: %w", err)
		}
		if n == 0 {
			return ErrNotAssociated
		}
		return nil
	})
}
