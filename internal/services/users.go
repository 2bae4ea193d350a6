package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

type UserService struct {
	store  *storage.Store
	events events.Publisher
}

func NewUserService(store *storage.Store, pub events.Publisher) *UserService {
	return &UserService{store: store, events: pub}
}

func (s *UserService) Get(ctx context.Context, id int64) (core.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]core.User, error) {
	return s.store.ListUsers(ctx)
}

// Check looks a user up by external uid. It never creates one: registration
// is an explicit separate step.
func (s *UserService) Check(ctx context.Context, uid string) (core.User, error) {
	return s.store.GetUserByUID(ctx, uid)
}

// Register creates a user for the external uid. It is idempotent per uid:
// registering an already-known uid returns the existing user and reports
// created=false.
func (s *UserService) Register(ctx context.Context, uid, name string) (core.User, bool, error) {
	existing, err := s.store.GetUserByUID(ctx, uid)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return core.User{}, false, fmt.Errorf("look up uid: %w", err)
	}

	u := core.User{Name: name, UID: uid}
	if err := u.Validate(); err != nil {
		return core.User{}, false, err
	}

	created, err := s.store.CreateUser(ctx, name, uid)
	if err != nil {
		return core.User{}, false, err
	}
	publish(ctx, s.events, events.EntityUser, events.ActionCreated, created.ID)
	return created, true, nil
}
