package domain

type SortOption string

const (
	SortPriceLow   SortOption = "price-low"
	SortPriceHigh  SortOption = "price-high"
	SortRating     SortOption = "rating"
	SortPopularity SortOption = "popularity"
)

// ParseSort maps unknown or empty values to SortPopularity.
func ParseSort(s string) SortOption {
	switch o := SortOption(s); o {
	case SortPriceLow, SortPriceHigh, SortRating, SortPopularity:
		return o
	}
	return SortPopularity
}

// SearchFilters holds optional constraints; a nil pointer or empty slice means no constraint.
// CheckIn, CheckOut and Guests are carried for the caller but do not narrow the result.
type SearchFilters struct {
	Destination  string         `json:"destination,omitempty"`
	CheckIn      string         `json:"checkIn,omitempty"`
	CheckOut     string         `json:"checkOut,omitempty"`
	Guests       *int           `json:"guests,omitempty"`
	PriceMin     *float64       `json:"priceMin,omitempty"`
	PriceMax     *float64       `json:"priceMax,omitempty"`
	StarRating   []int          `json:"starRating,omitempty"`
	Amenities    []Amenity      `json:"amenities,omitempty"`
	PropertyType []PropertyType `json:"propertyType,omitempty"`
}
