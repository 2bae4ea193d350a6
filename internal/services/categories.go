package services

import (
	"context"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

type CategoryService struct {
	store  *storage.Store
	events events.Publisher
}

func NewCategoryService(store *storage.Store, pub events.Publisher) *CategoryService {
	return &CategoryService{store: store, events: pub}
}

func (s *CategoryService) Get(ctx context.Context, id int64) (core.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (core.Category, error) {
	c := core.Category{Name: name}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	created, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		return core.Category{}, err
	}
	publish(ctx, s.events, events.EntityCategory, events.ActionCreated, created.ID)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name string) error {
	if err := (core.Category{Name: name}).Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateCategory(ctx, id, name); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityCategory, events.ActionUpdated, id)
	return nil
}

// Delete removes the category unconditionally; join rows referencing it are
// cascaded by the store.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityCategory, events.ActionDeleted, id)
	return nil
}
