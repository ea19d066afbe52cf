package app_test

import (
	"math"
	"testing"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputePrice(t *testing.T) {
	got := app.ComputePrice(100, "2025-01-01", "2025-01-04")
	if got.Nights != 3 || !near(got.BasePrice, 300) || !near(got.Taxes, 30) || got.Discount != 0 || !near(got.Total, 330) {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
}

func TestComputePrice_PartialDayRoundsUp(t *testing.T) {
	if got := app.ComputePrice(100, "2025-01-01T15:00:00Z", "2025-01-03T11:00:00Z"); got.Nights != 2 {
		t.Fatalf("nights=%d want 2", got.Nights)
	}
}

func TestComputePrice_InvalidIsZeroed(t *testing.T) {
	for name, args := range map[string][2]string{
		"reversed":    {"2025-01-04", "2025-01-01"},
		"same day":    {"2025-01-01", "2025-01-01"},
		"bad checkin": {"not-a-date", "2025-01-01"},
		"empty":       {"", ""},
	} {
		t.Run(name, func(t *testing.T) {
			if got := app.ComputePrice(100, args[0], args[1]); got != (domain.PriceBreakdown{}) {
				t.Fatalf("expected zeroed breakdown, got %+v", got)
			}
		})
	}
	if got := app.ComputePrice(-5, "2025-01-01", "2025-01-02"); got != (domain.PriceBreakdown{}) {
		t.Fatalf("negative rate: expected zeroed breakdown, got %+v", got)
	}
}
