package domain

type PropertyType string

const (
	PropertyHotel     PropertyType = "Hotel"
	PropertyResort    PropertyType = "Resort"
	PropertyApartment PropertyType = "Apartment"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyHotel, PropertyResort, PropertyApartment:
		return true
	}
	return false
}

// Amenity is a free-form tag such as "WiFi" or "Room Service".
type Amenity string

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// Hotel is catalog seed data. It is never mutated after load.
type Hotel struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Location      Location     `json:"location"`
	Images        []string     `json:"images"`
	PricePerNight float64      `json:"pricePerNight"`
	Rating        float64      `json:"rating"`
	ReviewsCount  int          `json:"reviewsCount"`
	Amenities     []Amenity    `json:"amenities"`
	PropertyType  PropertyType `json:"propertyType"`
	StarRating    int          `json:"starRating"`
	Description   string       `json:"description"`
	Rooms         []Room       `json:"rooms"`
	Reviews       []Review     `json:"reviews"`
}

// Room looks up a room by id within the hotel.
func (h Hotel) Room(id string) (Room, bool) {
	for _, r := range h.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

func (h Hotel) HasAmenity(a Amenity) bool {
	for _, x := range h.Amenities {
		if x == a {
			return true
		}
	}
	return false
}

// FirstImage is the image denormalized onto bookings.
func (h Hotel) FirstImage() string {
	if len(h.Images) == 0 {
		return ""
	}
	return h.Images[0]
}

type Room struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Capacity      int       `json:"capacity"`
	PricePerNight float64   `json:"pricePerNight"`
	Amenities     []Amenity `json:"amenities"`
	Description   string    `json:"description"`
	Images        []string  `json:"images"`
}
