package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

// CreateUser inserts a new user and returns it with its assigned id.
func (s *Store) CreateUser(ctx context.Context, name, uid string) (core.User, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, uid) VALUES (?, ?)", name, uid)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user insert id: %w", err)
	}
	return core.User{ID: id, Name: name, UID: uid}, nil
}

// GetUser retrieves a user by primary key.
func (s *Store) GetUser(ctx context.Context, id int64) (core.User, error) {
	return getUser(ctx, s.db, id)
}

func getUser(ctx context.Context, q querier, id int64) (core.User, error) {
	var u core.User
	err := q.QueryRowContext(ctx,
		"SELECT id, name, uid FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.UID)
	if err == sql.ErrNoRows {
		return core.User{}, notFound("User")
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByUID retrieves a user by external uid.
func (s *Store) GetUserByUID(ctx context.Context, uid string) (core.User, error) {
	var u core.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, uid FROM users WHERE uid = ? ORDER BY id LIMIT 1", uid).
		Scan(&u.ID, &u.Name, &u.UID)
	if err == sql.ErrNoRows {
		return core.User{}, notFound("User")
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by uid: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by primary key.
func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, uid FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name, &u.UID); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
