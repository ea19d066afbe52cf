package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

type fakeBookings struct {
	mu   sync.Mutex
	all  []domain.Booking
	fail error
}

func (f *fakeBookings) Insert(ctx context.Context, b domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for _, x := range f.all {
		if x.ID == b.ID {
			return domain.ErrDuplicateID
		}
	}
	f.all = append(f.all, b)
	return nil
}

func (f *fakeBookings) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) Get(ctx context.Context, id string) (domain.Booking, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.all {
		if b.ID == id {
			return b, true, nil
		}
	}
	return domain.Booking{}, false, nil
}

func (f *fakeBookings) SetStatus(ctx context.Context, id string, st domain.BookingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.all {
		if f.all[i].ID == id {
			f.all[i].Status = st
			return true, nil
		}
	}
	return false, nil
}

type fakeKV struct {
	store map[string]string
	ttls  map[string]time.Duration
	fail  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{store: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (k *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	if k.fail != nil {
		return "", false, k.fail
	}
	v, ok := k.store[key]
	return v, ok, nil
}

func (k *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if k.fail != nil {
		return k.fail
	}
	k.store[key] = value
	k.ttls[key] = ttl
	return nil
}

func (k *fakeKV) Del(ctx context.Context, key string) error {
	delete(k.store, key)
	return nil
}

type fakeIdentity struct {
	login    map[string]any
	register map[string]any
	err      error
	calls    int
}

func (f *fakeIdentity) Login(ctx context.Context, username, password string) (map[string]any, error) {
	f.calls++
	return f.login, f.err
}

func (f *fakeIdentity) Register(ctx context.Context, p domain.RegisterProfile) (map[string]any, error) {
	f.calls++
	return f.register, f.err
}

// fakeCache round-trips through JSON like the redis cache does.
type fakeCache struct {
	store map[string][]byte
	gets  int
	err   error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.err != nil {
		return false, c.err
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.err != nil {
		return c.err
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

var errStoreDown = errors.New("store down")

// ---- fixtures ----

func ptr[T any](v T) *T { return &v }

func hotel(id, name, city, country string, price, rating float64, reviews, stars int, pt domain.PropertyType, amen ...domain.Amenity) domain.Hotel {
	return domain.Hotel{
		ID: id, Name: name,
		Location:      domain.Location{City: city, Country: country},
		Images:        []string{"https://img/" + id + ".jpg"},
		PricePerNight: price, Rating: rating, ReviewsCount: reviews, StarRating: stars,
		PropertyType: pt, Amenities: amen,
		Rooms: []domain.Room{
			{ID: id + "-std", Name: "Standard", Capacity: 2, PricePerNight: price},
			{ID: id + "-fam", Name: "Family", Capacity: 4, PricePerNight: price * 2},
		},
	}
}

func fixtureHotels() []domain.Hotel {
	return []domain.Hotel{
		hotel("1", "Grand Plaza", "New York", "USA", 289, 4.6, 1284, 5, domain.PropertyHotel, "WiFi", "Gym", "Bar"),
		hotel("2", "Seaside Resort", "Miami", "USA", 349, 4.8, 2104, 5, domain.PropertyResort, "WiFi", "Pool", "Spa"),
		hotel("3", "Le Petit Marais", "Paris", "France", 189, 4.4, 642, 4, domain.PropertyHotel, "WiFi", "Bar"),
		hotel("4", "Shibuya Sky", "Tokyo", "Japan", 145, 4.4, 642, 3, domain.PropertyApartment, "WiFi", "Laundry"),
		hotel("5", "York Minster Inn", "York", "UK", 189, 3.9, 120, 2, domain.PropertyHotel, "Parking"),
	}
}

func ids(hs []domain.Hotel) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.ID
	}
	return out
}
