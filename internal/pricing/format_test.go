package pricing

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(1_234_567, NotationSymbol); got != "₩1,234,567" {
		t.Fatalf("unexpected symbol notation: %s", got)
	}
	if got := FormatPrice(10_000, NotationText); got != "10,000원" {
		t.Fatalf("unexpected text notation: %s", got)
	}
	if got := FormatPrice(999, NotationSymbol); got != "₩999" {
		t.Fatalf("expected no separator under a thousand, got %s", got)
	}
	if got := FormatPrice(-2_500, NotationSymbol); got != "₩-2,500" {
		t.Fatalf("unexpected negative formatting: %s", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(0.1); got != "10%" {
		t.Fatalf("expected 10%%, got %s", got)
	}
	if got := FormatRate(0.05); got != "5%" {
		t.Fatalf("expected 5%%, got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 13, 45, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2025-03-07" {
		t.Fatalf("expected 2025-03-07, got %s", got)
	}
}
