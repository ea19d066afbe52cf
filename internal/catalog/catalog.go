// Package catalog holds the static hotel seed data.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"hotel_booking/internal/domain"
)

//go:embed hotels.json
var seed []byte

// Load decodes a JSON array of hotels. Duplicate hotel ids are rejected.
func Load(r io.Reader) ([]domain.Hotel, error) {
	var hotels []domain.Hotel
	if err := json.NewDecoder(r).Decode(&hotels); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(hotels))
	for _, h := range hotels {
		if h.ID == "" {
			return nil, fmt.Errorf("catalog: hotel %q has no id", h.Name)
		}
		if _, dup := seen[h.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate hotel id %q", h.ID)
		}
		seen[h.ID] = struct{}{}
	}
	return hotels, nil
}

func Embedded() ([]domain.Hotel, error) { return Load(bytes.NewReader(seed)) }

func LoadFile(path string) ([]domain.Hotel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Source serves the embedded catalog, or File when set.
type Source struct{ File string }

func (s Source) LoadAll(ctx context.Context) ([]domain.Hotel, error) {
	if s.File != "" {
		return LoadFile(s.File)
	}
	return Embedded()
}
