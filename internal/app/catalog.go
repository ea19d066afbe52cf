package app

import (
	"context"
	"fmt"

	"hotel_booking/internal/domain"
)

// Catalog is the immutable in-memory hotel collection loaded at startup.
type Catalog struct {
	hotels []domain.Hotel
	byID   map[string]int
}

func NewCatalog(hotels []domain.Hotel) *Catalog {
	c := &Catalog{hotels: hotels, byID: make(map[string]int, len(hotels))}
	for i, h := range hotels {
		c.byID[h.ID] = i
	}
	return c
}

// LoadCatalog pulls the whole collection from src once.
func LoadCatalog(ctx context.Context, src domain.CatalogSource) (*Catalog, error) {
	hotels, err := src.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewCatalog(hotels), nil
}

func (c *Catalog) All() []domain.Hotel { return c.hotels }

func (c *Catalog) Len() int { return len(c.hotels) }

func (c *Catalog) Hotel(id string) (domain.Hotel, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Hotel{}, false
	}
	return c.hotels[i], true
}

// HotelRoom resolves a hotel and one of its rooms, or ErrNotFound.
func (c *Catalog) HotelRoom(hotelID, roomID string) (domain.Hotel, domain.Room, error) {
	h, ok := c.Hotel(hotelID)
	if !ok {
		return domain.Hotel{}, domain.Room{}, fmt.Errorf("hotel %q: %w", hotelID, domain.ErrNotFound)
	}
	r, ok := h.Room(roomID)
	if !ok {
		return domain.Hotel{}, domain.Room{}, fmt.Errorf("room %q in hotel %q: %w", roomID, hotelID, domain.ErrNotFound)
	}
	return h, r, nil
}
