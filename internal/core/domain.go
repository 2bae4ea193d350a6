package core

import (
	"errors"
	"strings"
	"time"
)

// maxNameLen matches the column width of the name fields in the schema.
const maxNameLen = 51

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// User is the ownership root: every trip and expense belongs to one user.
	// UID is an opaque identifier issued by an external identity source.
	User struct {
		ID   int64
		Name string
		UID  string
	}

	Trip struct {
		ID          int64
		Name        string
		Date        Date
		Description string
		UserID      int64
	}

	// Expense optionally belongs to a trip via a nullable foreign key.
	Expense struct {
		ID          int64
		Name        string
		Amount      Money
		Description string
		Date        Date
		UserID      int64
		TripID      *int64
	}

	// Category is an independent lookup entity with no owner.
	Category struct {
		ID   int64
		Name string
	}

	// ExpenseCategory is a join row tagging an expense with a category.
	// Duplicate (expense, category) pairs are permitted by the schema.
	ExpenseCategory struct {
		ID         int64
		ExpenseID  int64
		CategoryID int64
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyUID      = errors.New("empty uid")
	ErrNameTooLong   = errors.New("name too long (max 51 characters)")
)

const dateLayout = "2006-01-02"

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLen {
		return ErrNameTooLong
	}
	return nil
}

func (u User) Validate() error {
	if err := ValidateName(u.Name); err != nil {
		return err
	}
	if strings.TrimSpace(u.UID) == "" {
		return ErrEmptyUID
	}
	return nil
}

func (c Category) Validate() error {
	return ValidateName(c.Name)
}

func (t Trip) Validate() error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	return t.Date.Validate()
}

func (e Expense) Validate() error {
	if err := ValidateName(e.Name); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}
