package events

import (
	"encoding/json"
	"time"
)

// Actions carried by entity change messages.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entity names carried by entity change messages.
const (
	EntityUser            = "user"
	EntityTrip            = "trip"
	EntityExpense         = "expense"
	EntityCategory        = "category"
	EntityExpenseCategory = "expense_category"
)

// EntityChangeMessage is a lightweight notification: consumers fetch the full
// record themselves if they need it.
type EntityChangeMessage struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntityChangeMessage(entity, action string, id int64) *EntityChangeMessage {
	return &EntityChangeMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *EntityChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntityChangeMessageFromJSON(data []byte) (*EntityChangeMessage, error) {
	var msg EntityChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
