package kv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/kv"
)

func newStore(t *testing.T) (*kv.BookingStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	return kv.NewBookingStore(redisad.NewKV(redisad.NewClient(srv.Addr(), "", 0))), srv
}

func booking(id, user string) domain.Booking {
	return domain.Booking{
		ID: id, UserID: user, HotelID: "1", RoomID: "1-std",
		CheckIn: "2025-01-01", CheckOut: "2025-01-04", Guests: 2,
		Status:    domain.StatusConfirmed,
		CreatedAt: time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBookingStore_InsertListGet(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, booking("b1", "alice")))
	require.NoError(t, s.Insert(ctx, booking("b2", "bob")))
	require.NoError(t, s.Insert(ctx, booking("b3", "alice")))

	got, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b3", got[1].ID)

	b, ok, err := s.Get(ctx, "b2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, booking("b2", "bob"), b)

	_, ok, err = s.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookingStore_DuplicateID(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, booking("b1", "alice")))
	err := s.Insert(ctx, booking("b1", "bob"))
	require.True(t, errors.Is(err, domain.ErrDuplicateID), "got %v", err)
}

func TestBookingStore_SetStatusInPlace(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, booking("b1", "alice")))
	require.NoError(t, s.Insert(ctx, booking("b2", "alice")))

	ok, err := s.SetStatus(ctx, "b1", domain.StatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID, "position preserved")
	assert.Equal(t, domain.StatusCancelled, got[0].Status)
	assert.Equal(t, domain.StatusConfirmed, got[1].Status)

	ok, err = s.SetStatus(ctx, "missing", domain.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookingStore_CorruptBlobReadsEmpty(t *testing.T) {
	s, srv := newStore(t)
	ctx := context.Background()
	require.NoError(t, srv.Set(kv.BookingsKey, "{not json"))

	got, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, ok, err := s.Get(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.SetStatus(ctx, "b1", domain.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookingStore_StoreDown(t *testing.T) {
	s, srv := newStore(t)
	srv.Close()

	_, err := s.ListByUser(context.Background(), "alice")
	require.Error(t, err)
}
