package app

import (
	"math"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

// TaxRate is applied to the base price of every stay.
const TaxRate = 0.10

var stayLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04"}

// ParseStayDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseStayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range stayLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Nights is the ceiling of whole days between the two dates. ok is false when
// either date does not parse or checkOut is not after checkIn.
func Nights(checkIn, checkOut string) (nights int, ok bool) {
	in, err := ParseStayDate(checkIn)
	if err != nil {
		return 0, false
	}
	out, err := ParseStayDate(checkOut)
	if err != nil {
		return 0, false
	}
	if !out.After(in) {
		return 0, false
	}
	return int(math.Ceil(out.Sub(in).Hours() / 24)), true
}

// ComputePrice returns a zeroed breakdown for an invalid stay or a non-positive
// rate. Values are full precision; rounding is left to the presenter.
func ComputePrice(ratePerNight float64, checkIn, checkOut string) domain.PriceBreakdown {
	nights, ok := Nights(checkIn, checkOut)
	if !ok || !(ratePerNight > 0) {
		return domain.PriceBreakdown{}
	}
	base := ratePerNight * float64(nights)
	taxes := base * TaxRate
	discount := 0.0
	return domain.PriceBreakdown{
		BasePrice: base,
		Nights:    nights,
		Taxes:     taxes,
		Discount:  discount,
		Total:     base + taxes - discount,
	}
}
