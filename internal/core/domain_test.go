package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-03")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-02-03" {
		t.Errorf("round-trip = %q, want 2024-02-03", d.String())
	}

	for _, bad := range []string{"", "03/02/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Name: "Sam", UID: "ext-123"}
	if err := u.Validate(); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}
	if err := (User{Name: "", UID: "ext-123"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v", err)
	}
	if err := (User{Name: "Sam", UID: "  "}).Validate(); !errors.Is(err, ErrEmptyUID) {
		t.Errorf("blank uid: got %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Name:        "Lunch",
		Amount:      Money{Cents: 1250},
		Description: "team lunch",
		Date:        NewDate(2024, 2, 3),
		UserID:      1,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid expense rejected: %v", err)
	}

	noDate := valid
	noDate.Date = Date{}
	if err := noDate.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("zero date: got %v", err)
	}

	badAmount := valid
	badAmount.Amount = Money{Cents: 0}
	if err := badAmount.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: got %v", err)
	}

	longName := valid
	longName.Name = strings.Repeat("x", 52)
	if err := longName.Validate(); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("long name: got %v", err)
	}
}

func TestTripValidate(t *testing.T) {
	trip := Trip{Name: "Tokyo", Date: NewDate(2024, 5, 1), UserID: 1}
	if err := trip.Validate(); err != nil {
		t.Errorf("valid trip rejected: %v", err)
	}
	trip.Name = " "
	if err := trip.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: got %v", err)
	}
}
