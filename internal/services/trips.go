package services

import (
	"context"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

type TripService struct {
	store  *storage.Store
	events events.Publisher
}

func NewTripService(store *storage.Store, pub events.Publisher) *TripService {
	return &TripService{store: store, events: pub}
}

func (s *TripService) Get(ctx context.Context, id int64) (core.Trip, error) {
	return s.store.GetTrip(ctx, id)
}

// List returns all trips, or only those owned by userID when non-nil.
func (s *TripService) List(ctx context.Context, userID *int64) ([]core.Trip, error) {
	return s.store.ListTrips(ctx, userID)
}

// Expenses returns the expenses currently attached to the trip.
func (s *TripService) Expenses(ctx context.Context, tripID int64) ([]core.Expense, error) {
	return s.store.ListExpensesByTrip(ctx, tripID)
}

func (s *TripService) Create(ctx context.Context, t core.Trip) (core.Trip, error) {
	if err := t.Validate(); err != nil {
		return core.Trip{}, err
	}
	created, err := s.store.CreateTrip(ctx, t)
	if err != nil {
		return core.Trip{}, err
	}
	publish(ctx, s.events, events.EntityTrip, events.ActionCreated, created.ID)
	return created, nil
}

func (s *TripService) Update(ctx context.Context, id int64, name string) error {
	if err := core.ValidateName(name); err != nil {
		return err
	}
	if err := s.store.UpdateTrip(ctx, id, name); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityTrip, events.ActionUpdated, id)
	return nil
}

// Delete cascades through the trip's expenses before removing the trip.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTrip(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityTrip, events.ActionDeleted, id)
	return nil
}

// AttachExpense puts an existing expense on the trip.
func (s *TripService) AttachExpense(ctx context.Context, tripID, expenseID int64) error {
	if err := s.store.AttachExpense(ctx, tripID, expenseID); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityTrip, events.ActionUpdated, tripID)
	return nil
}

// DetachExpense removes an expense from the trip; the expense must currently
// be associated with it.
func (s *TripService) DetachExpense(ctx context.Context, tripID, expenseID int64) error {
	if err := s.store.DetachExpense(ctx, tripID, expenseID); err != nil {
		return err
	}
	publish(ctx, s.events, events.EntityTrip, events.ActionUpdated, tripID)
	return nil
}
