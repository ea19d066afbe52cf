package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type QueryService struct {
	catalog  *Catalog
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(c *Catalog, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{catalog: c, cache: cache, cacheTTL: ttl}
}

func (s *QueryService) Search(ctx context.Context, f domain.SearchFilters, sort domain.SortOption) []domain.Hotel {
	sort = domain.ParseSort(string(sort))
	key := searchKey(f, sort)

	var out []domain.Hotel
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &out); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache get failed")
		} else if ok {
			return out
		}
	}

	out = Search(s.catalog.All(), f, sort)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache set failed")
		}
	}
	return out
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, ok := s.catalog.Hotel(id)
	if !ok {
		return domain.Hotel{}, fmt.Errorf("hotel %q: %w", id, domain.ErrNotFound)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

// Quote previews the price of a room for the given stay.
func (s *QueryService) Quote(ctx context.Context, hotelID, roomID, checkIn, checkOut string) (domain.PriceBreakdown, error) {
	_, room, err := s.catalog.HotelRoom(hotelID, roomID)
	if err != nil {
		return domain.PriceBreakdown{}, err
	}
	return ComputePrice(room.PricePerNight, checkIn, checkOut), nil
}

// searchKey hashes the normalized filters so equivalent queries share an entry.
func searchKey(f domain.SearchFilters, sort domain.SortOption) string {
	f = normalizeFilters(f)
	// stay dates and guests never narrow the result
	f.CheckIn, f.CheckOut, f.Guests = "", "", nil
	f.Destination = strings.ToLower(f.Destination)
	slices.Sort(f.StarRating)
	slices.Sort(f.Amenities)
	slices.Sort(f.PropertyType)
	b, _ := json.Marshal(struct {
		F domain.SearchFilters
		S domain.SortOption
	}{f, sort})
	sum := sha1.Sum(b)
	return "search:" + hex.EncodeToString(sum[:])
}
