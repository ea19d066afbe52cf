// Package kv persists the booking collection as one JSON blob in a key-value store.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// BookingsKey holds every user's bookings, commingled, in insertion order.
const BookingsKey = "hotel_bookings"

// BookingStore serializes read-modify-write cycles with a mutex, so it is safe
// for one process. Multiple writer processes need the mysql store instead.
type BookingStore struct {
	kv domain.KVStore
	mu sync.Mutex
}

func NewBookingStore(kv domain.KVStore) *BookingStore { return &BookingStore{kv: kv} }

func (s *BookingStore) Insert(ctx context.Context, b domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, x := range all {
		if x.ID == b.ID {
			return fmt.Errorf("booking %q: %w", b.ID, domain.ErrDuplicateID)
		}
	}
	return s.save(ctx, append(all, b))
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BookingStore) Get(ctx context.Context, id string) (domain.Booking, bool, error) {
	all, err := s.load(ctx)
	if err != nil {
		return domain.Booking{}, false, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, true, nil
		}
	}
	return domain.Booking{}, false, nil
}

func (s *BookingStore) SetStatus(ctx context.Context, id string, st domain.BookingStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Status = st
			return true, s.save(ctx, all)
		}
	}
	return false, nil
}

// load treats a corrupt blob as an empty collection.
func (s *BookingStore) load(ctx context.Context) ([]domain.Booking, error) {
	raw, ok, err := s.kv.Get(ctx, BookingsKey)
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var all []domain.Booking
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		log.Warn().Err(err).Str("key", BookingsKey).Msg("bookings blob unreadable, treating as empty")
		return nil, nil
	}
	return all, nil
}

func (s *BookingStore) save(ctx context.Context, all []domain.Booking) error {
	b, err := json.Marshal(all)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, BookingsKey, string(b), 0); err != nil {
		return fmt.Errorf("write bookings: %w", err)
	}
	return nil
}
