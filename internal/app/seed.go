package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/domain"
)

type SeedService struct {
	repo    domain.HotelRepository
	workers int64
}

func NewSeedService(r domain.HotelRepository, workers int) *SeedService {
	if workers <= 0 {
		workers = 1
	}
	return &SeedService{repo: r, workers: int64(workers)}
}

// SeedHotels upserts every hotel with bounded concurrency. A failing hotel is
// logged and counted; the rest still run.
func (s *SeedService) SeedHotels(ctx context.Context, hotels []domain.Hotel) (ok, failed int, err error) {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, h := range hotels {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return ok, failed, fmt.Errorf("seed aborted: %w", err)
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return ok, failed, fmt.Errorf("seed aborted: %w", err)
		}
		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			uerr := s.repo.UpsertHotel(ctx, h)
			mu.Lock()
			defer mu.Unlock()
			if uerr != nil {
				failed++
				log.Warn().Str("id", h.ID).Err(uerr).Msg("seed failed")
				return
			}
			ok++
			log.Info().Str("id", h.ID).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	return ok, failed, nil
}
