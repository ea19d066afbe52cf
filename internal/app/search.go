package app

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"hotel_booking/internal/domain"
)

// Search filters the catalog and orders the result. It never fails: malformed
// filter values (NaN bounds, out-of-range stars, empty tags) are dropped.
// The input slice is not modified.
func Search(hotels []domain.Hotel, f domain.SearchFilters, sort domain.SortOption) []domain.Hotel {
	f = normalizeFilters(f)

	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if matches(h, f) {
			out = append(out, h)
		}
	}

	slices.SortStableFunc(out, comparator(sort))
	return out
}

func matches(h domain.Hotel, f domain.SearchFilters) bool {
	if f.Destination != "" {
		d := strings.ToLower(f.Destination)
		if !strings.Contains(strings.ToLower(h.Location.City), d) &&
			!strings.Contains(strings.ToLower(h.Location.Country), d) &&
			!strings.Contains(strings.ToLower(h.Name), d) {
			return false
		}
	}
	if f.PriceMin != nil && h.PricePerNight < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && h.PricePerNight > *f.PriceMax {
		return false
	}
	if len(f.StarRating) > 0 && !slices.Contains(f.StarRating, h.StarRating) {
		return false
	}
	for _, a := range f.Amenities {
		if !h.HasAmenity(a) {
			return false
		}
	}
	if len(f.PropertyType) > 0 && !slices.Contains(f.PropertyType, h.PropertyType) {
		return false
	}
	return true
}

func comparator(sort domain.SortOption) func(a, b domain.Hotel) int {
	switch domain.ParseSort(string(sort)) {
	case domain.SortPriceLow:
		return func(a, b domain.Hotel) int { return cmp.Compare(a.PricePerNight, b.PricePerNight) }
	case domain.SortPriceHigh:
		return func(a, b domain.Hotel) int { return cmp.Compare(b.PricePerNight, a.PricePerNight) }
	case domain.SortRating:
		return func(a, b domain.Hotel) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b domain.Hotel) int { return cmp.Compare(b.ReviewsCount, a.ReviewsCount) }
	}
}

func normalizeFilters(f domain.SearchFilters) domain.SearchFilters {
	if f.PriceMin != nil && math.IsNaN(*f.PriceMin) {
		f.PriceMin = nil
	}
	if f.PriceMax != nil && math.IsNaN(*f.PriceMax) {
		f.PriceMax = nil
	}

	var stars []int
	for _, s := range f.StarRating {
		if s >= 1 && s <= 5 {
			stars = append(stars, s)
		}
	}
	f.StarRating = stars

	var amen []domain.Amenity
	for _, a := range f.Amenities {
		if t := domain.Amenity(strings.TrimSpace(string(a))); t != "" {
			amen = append(amen, t)
		}
	}
	f.Amenities = amen

	var types []domain.PropertyType
	for _, p := range f.PropertyType {
		if p.Valid() {
			types = append(types, p)
		}
	}
	f.PropertyType = types
	return f
}
