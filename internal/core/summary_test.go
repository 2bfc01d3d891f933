package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func rec(day int, c Category, amount string) Record {
	return Record{
		Date:     time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC),
		Category: c,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestSummarize(t *testing.T) {
	l := Ledger{
		rec(1, Food, "10.00"),
		rec(2, Travel, "5.50"),
		rec(3, Food, "2.25"),
	}
	s := Summarize(l)

	if got := FormatAmount(s.Total); got != "17.75" {
		t.Fatalf("total = %s, want 17.75", got)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("categories = %d, want 2", len(s.ByCategory))
	}
	// Presentation order: Food before Travel.
	if s.ByCategory[0].Category != Food || FormatAmount(s.ByCategory[0].Amount) != "12.25" {
		t.Fatalf("unexpected first row: %+v", s.ByCategory[0])
	}
	if s.ByCategory[1].Category != Travel || FormatAmount(s.ByCategory[1].Amount) != "5.50" {
		t.Fatalf("unexpected second row: %+v", s.ByCategory[1])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Total.IsZero() {
		t.Fatalf("empty ledger total = %s, want 0", s.Total)
	}
	if len(s.ByCategory) != 0 {
		t.Fatalf("empty ledger has %d category rows", len(s.ByCategory))
	}
}

func TestRecordValidate(t *testing.T) {
	valid := rec(1, Food, "1.00")
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	noDate := valid
	noDate.Date = time.Time{}
	if err := noDate.Validate(); err != ErrInvalidDate {
		t.Fatalf("zero date: got %v, want ErrInvalidDate", err)
	}

	badCat := valid
	badCat.Category = "Groceries"
	if err := badCat.Validate(); err != ErrInvalidCategory {
		t.Fatalf("unknown category: got %v, want ErrInvalidCategory", err)
	}

	negative := valid
	negative.Amount = decimal.RequireFromString("-0.01")
	if err := negative.Validate(); err != ErrInvalidAmount {
		t.Fatalf("negative amount: got %v, want ErrInvalidAmount", err)
	}

	zero := valid
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount rejected: %v", err)
	}
}
