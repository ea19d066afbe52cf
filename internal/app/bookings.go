package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

const maxIDAttempts = 3

type BookingService struct {
	repo    domain.BookingRepository
	catalog *Catalog
	now     func() time.Time
	newID   func() string
}

func NewBookingService(r domain.BookingRepository, c *Catalog) *BookingService {
	return &BookingService{
		repo:    r,
		catalog: c,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   NewBookingID,
	}
}

// WithClock and WithIDGenerator exist for tests.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

func (s *BookingService) WithIDGenerator(gen func() string) *BookingService {
	s.newID = gen
	return s
}

func NewBookingID() string { return "booking-" + uuid.NewString() }

// Create books a room for user. The booking starts confirmed.
func (s *BookingService) Create(ctx context.Context, user *domain.StoredUser, hotelID string, form domain.BookingFormData) (domain.Booking, error) {
	if user == nil || user.ID == "" {
		return domain.Booking{}, domain.ErrNotAuthenticated
	}
	hotel, room, err := s.catalog.HotelRoom(hotelID, form.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := validateForm(form, room); err != nil {
		return domain.Booking{}, err
	}

	b := domain.Booking{
		UserID:         user.ID,
		HotelID:        hotel.ID,
		HotelName:      hotel.Name,
		HotelImage:     hotel.FirstImage(),
		RoomID:         room.ID,
		RoomName:       room.Name,
		CheckIn:        form.CheckIn,
		CheckOut:       form.CheckOut,
		Guests:         form.Guests,
		GuestDetails:   form.GuestDetails,
		PriceBreakdown: ComputePrice(room.PricePerNight, form.CheckIn, form.CheckOut),
		Status:         domain.StatusConfirmed,
		CreatedAt:      s.now().Truncate(time.Microsecond),
	}

	for attempt := 1; ; attempt++ {
		b.ID = s.newID()
		err = s.repo.Insert(ctx, b)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateID) || attempt == maxIDAttempts {
			return domain.Booking{}, fmt.Errorf("persist booking: %w", err)
		}
		log.Warn().Str("id", b.ID).Int("attempt", attempt).Msg("booking id collision, regenerating")
	}

	observability.ObserveBooking("created")
	log.Info().Str("booking", b.ID).Str("user", b.UserID).Str("hotel", b.HotelID).Msg("booking created")
	return b, nil
}

// ListForUser returns the user's bookings in insertion order; empty without a user.
func (s *BookingService) ListForUser(ctx context.Context, user *domain.StoredUser) ([]domain.Booking, error) {
	if user == nil || user.ID == "" {
		return []domain.Booking{}, nil
	}
	out, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Booking{}
	}
	return out, nil
}

// GetByID performs no ownership check.
func (s *BookingService) GetByID(ctx context.Context, id string) (domain.Booking, bool, error) {
	return s.repo.Get(ctx, id)
}

// Cancel marks the booking cancelled. Unknown ids yield false; cancelling
// twice is a no-op that still reports true.
func (s *BookingService) Cancel(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.SetStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		return false, err
	}
	if ok {
		observability.ObserveBooking("cancelled")
		log.Info().Str("booking", id).Msg("booking cancelled")
	}
	return ok, nil
}

// FilterBookings narrows a booking list to a time window relative to now.
// Upcoming: confirmed and checking in after now. Past: checked out before
// now, or cancelled. Unparseable dates never count as upcoming or past by date.
func FilterBookings(bs []domain.Booking, w domain.BookingWindow, now time.Time) []domain.Booking {
	if w != domain.WindowUpcoming && w != domain.WindowPast {
		return bs
	}
	out := make([]domain.Booking, 0, len(bs))
	for _, b := range bs {
		in, inErr := ParseStayDate(b.CheckIn)
		co, outErr := ParseStayDate(b.CheckOut)
		switch w {
		case domain.WindowUpcoming:
			if inErr == nil && in.After(now) && b.Status == domain.StatusConfirmed {
				out = append(out, b)
			}
		case domain.WindowPast:
			if (outErr == nil && co.Before(now)) || b.Status == domain.StatusCancelled {
				out = append(out, b)
			}
		}
	}
	return out
}

func validateForm(form domain.BookingFormData, room domain.Room) error {
	if form.Guests < 1 {
		return fmt.Errorf("guests must be at least 1: %w", domain.ErrInvalidInput)
	}
	if form.Guests > room.Capacity {
		return fmt.Errorf("room %q holds at most %d guests: %w", room.ID, room.Capacity, domain.ErrInvalidInput)
	}
	if _, ok := Nights(form.CheckIn, form.CheckOut); !ok {
		return fmt.Errorf("check-out must be a valid date after check-in: %w", domain.ErrInvalidInput)
	}
	return nil
}
