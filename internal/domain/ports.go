package domain

import (
	"context"
	"time"
)

type CatalogSource interface {
	LoadAll(ctx context.Context) ([]Hotel, error)
}

type HotelRepository interface {
	UpsertHotel(ctx context.Context, h Hotel) error
}

type BookingRepository interface {
	// Insert appends b; ErrDuplicateID if the id already exists anywhere in the store.
	Insert(ctx context.Context, b Booking) error
	// ListByUser returns the user's bookings in insertion order.
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	Get(ctx context.Context, id string) (Booking, bool, error)
	// SetStatus updates in place and reports whether the id existed.
	SetStatus(ctx context.Context, id string, st BookingStatus) (bool, error)
}

type IdentityClient interface {
	Login(ctx context.Context, username, password string) (map[string]any, error)
	Register(ctx context.Context, p RegisterProfile) (map[string]any, error)
}

// KVStore is a string key/value store. ttl <= 0 means no expiry.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
