package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Food     Category = "Food"
	Travel   Category = "Travel"
	Shopping Category = "Shopping"
	Bills    Category = "Bills"
	Other    Category = "Other"
)

type (
	// Category is one of the closed set of expense categories. The set
	// is enforced at entry time only; a backing file edited out-of-band
	// is not re-validated on load.
	Category string

	// Record is a single confirmed expense. Immutable once appended:
	// there is no update or delete operation anywhere in the system.
	Record struct {
		Date     time.Time
		Category Category
		Amount   decimal.Decimal
	}

	// Ledger is the append-ordered sequence of records. Order is
	// insertion order; there is no sort key and no record identity.
	Ledger []Record
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
)

// Categories returns the closed category set in presentation order.
func Categories() []Category {
	return []Category{Food, Travel, Shopping, Bills, Other}
}

// ParseCategory validates a user-supplied category name against the
// closed set. Matching is case-insensitive; the canonical spelling is
// returned.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) Validate() error {
	for _, known := range Categories() {
		if c == known {
			return nil
		}
	}
	return ErrInvalidCategory
}

func (r Record) Validate() error {
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Append returns the ledger with the record added at the end.
func (l Ledger) Append(r Record) Ledger {
	return append(l, r)
}
