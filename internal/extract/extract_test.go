package extract

import (
	"context"
	"errors"
	"testing"

	"billscan/internal/insight"
	applog "billscan/internal/log"
)

func TestLastAmount(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"last token wins", "Subtotal 10.00 Tax 1.50 Total 11.50", "11.50", true},
		{"no numeric token", "thank you for shopping", "", false},
		{"empty text", "", "", false},
		{"bare integer", "Total 42", "42.00", true},
		{"integer then decimal", "3 items 27.80", "27.80", true},
		// Three fractional digits: the decimal branch takes "12.34",
		// the leftover "5" is its own token and is the last one.
		{"three fractional digits", "Total 12.345", "5.00", true},
		// Thousands separators are not stripped; the comma splits the
		// token and "234.56" is the last match.
		{"thousands separator", "Grand total 1,234.56", "234.56", true},
		{"multiline receipt", "Milk 2.50\nBread 1.80\nTotal 4.30\n", "4.30", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := LastAmount(tc.text)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.StringFixed(2) != tc.want {
				t.Fatalf("amount = %s, want %s", got.StringFixed(2), tc.want)
			}
		})
	}
}

func TestFirstAmount(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"11.50", "11.50", true},
		{"The total is 11.50.", "11.50", true},
		{"11.50 (sum of 10.00 and 1.50)", "11.50", true},
		{"no idea", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := FirstAmount(tc.text)
		if ok != tc.ok {
			t.Fatalf("%q: ok = %v, want %v", tc.text, ok, tc.ok)
		}
		if ok && got.StringFixed(2) != tc.want {
			t.Fatalf("%q: amount = %s, want %s", tc.text, got.StringFixed(2), tc.want)
		}
	}
}

type fixedInsight struct{ reply string }

func (f fixedInsight) Complete(context.Context, string) (string, error) {
	return f.reply, nil
}

type failingInsight struct{}

func (failingInsight) Complete(context.Context, string) (string, error) {
	return "", errors.New("backend down")
}

func testLogger() *applog.Logger {
	return applog.New(applog.DefaultConfig())
}

func TestSuggestInsightWins(t *testing.T) {
	// The insight answer differs from the fallback's pick; the insight
	// answer is the final result.
	e := New(fixedInsight{reply: "99.99"}, testLogger())
	got, ok := e.Suggest(context.Background(), "Subtotal 10.00 Tax 1.50 Total 11.50")
	if !ok || got.StringFixed(2) != "99.99" {
		t.Fatalf("got %s ok=%v, want 99.99", got.StringFixed(2), ok)
	}
}

func TestSuggestInsightFailureFallsBack(t *testing.T) {
	text := "Subtotal 10.00 Tax 1.50 Total 11.50"
	e := New(failingInsight{}, testLogger())
	got, ok := e.Suggest(context.Background(), text)

	want, wantOK := LastAmount(text)
	if ok != wantOK || !got.Equal(want) {
		t.Fatalf("got %s ok=%v, want fallback %s ok=%v", got, ok, want, wantOK)
	}
}

func TestSuggestInsightGarbageFallsBack(t *testing.T) {
	e := New(fixedInsight{reply: "I could not find a total."}, testLogger())
	got, ok := e.Suggest(context.Background(), "Total 7.25")
	if !ok || got.StringFixed(2) != "7.25" {
		t.Fatalf("got %s ok=%v, want 7.25", got.StringFixed(2), ok)
	}
}

func TestSuggestNoop(t *testing.T) {
	e := New(insight.Noop{}, testLogger())

	got, ok := e.Suggest(context.Background(), "Total 8.10")
	if !ok || got.StringFixed(2) != "8.10" {
		t.Fatalf("got %s ok=%v, want 8.10", got.StringFixed(2), ok)
	}

	if _, ok := e.Suggest(context.Background(), "nothing numeric here"); ok {
		t.Fatal("expected no amount detected")
	}
}
