package domain

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type GuestDetails struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type PriceBreakdown struct {
	BasePrice float64 `json:"basePrice"`
	Nights    int     `json:"nights"`
	Taxes     float64 `json:"taxes"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// Booking is immutable after creation except for Status.
// HotelName, HotelImage and RoomName are snapshots taken at creation time.
type Booking struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	HotelID        string         `json:"hotelId"`
	HotelName      string         `json:"hotelName"`
	HotelImage     string         `json:"hotelImage"`
	RoomID         string         `json:"roomId"`
	RoomName       string         `json:"roomName"`
	CheckIn        string         `json:"checkIn"`
	CheckOut       string         `json:"checkOut"`
	Guests         int            `json:"guests"`
	GuestDetails   GuestDetails   `json:"guestDetails"`
	PriceBreakdown PriceBreakdown `json:"priceBreakdown"`
	Status         BookingStatus  `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// BookingFormData is what the booking form submits.
type BookingFormData struct {
	RoomID       string       `json:"roomId"`
	CheckIn      string       `json:"checkIn"`
	CheckOut     string       `json:"checkOut"`
	Guests       int          `json:"guests"`
	GuestDetails GuestDetails `json:"guestDetails"`
}

type BookingWindow string

const (
	WindowAll      BookingWindow = "all"
	WindowUpcoming BookingWindow = "upcoming"
	WindowPast     BookingWindow = "past"
)
