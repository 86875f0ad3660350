package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/gym"
	"github.com/Wezylnia/GymSystem-sub001/internal/metrics"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/Wezylnia/GymSystem-sub001/internal/trainer"
	"golang.org/x/sync/errgroup"
)

// Finder lists the trainers who can take a service at a given slot.
type Finder struct {
	evaluator   *Evaluator
	services    store.Repository[gym.Service]
	specialties store.Repository[trainer.Specialty]
	trainers    store.Repository[trainer.Trainer]
	concurrency int
}

func NewFinder(
	evaluator *Evaluator,
	services store.Repository[gym.Service],
	specialties store.Repository[trainer.Specialty],
	trainers store.Repository[trainer.Trainer],
	concurrency int,
) *Finder {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Finder{
		evaluator:   evaluator,
		services:    services,
		specialties: specialties,
		trainers:    trainers,
		concurrency: concurrency,
	}
}

// FindAvailableTrainers returns, ordered by id, every active trainer linked
// to the service whose availability check passes for the slot.
func (f *Finder) FindAvailableTrainers(ctx context.Context, serviceID int, start time.Time, durationMinutes int) ([]trainer.Trainer, error) {
	begin := time.Now()
	defer func() { metrics.ObserveFinder(time.Since(begin).Seconds()) }()

	if err := validateSlot(start, durationMinutes); err != nil {
		return nil, err
	}

	if _, err := f.services.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, apperr.Unexpected("booking.FindAvailableTrainers", err)
	}

	candidates, err := f.candidates(ctx, serviceID)
	if err != nil {
		return nil, apperr.Unexpected("booking.FindAvailableTrainers", err)
	}
	if len(candidates) == 0 {
		return []trainer.Trainer{}, nil
	}

	free := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, id := range candidates {
		i, id := i, id
		g.Go(func() error {
			v, err := f.evaluator.CheckTrainerAvailability(gctx, id, start, durationMinutes)
			if err != nil {
				return err
			}
			free[i] = v.Available
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.From("booking.FindAvailableTrainers", err)
	}

	ids := make([]int64, 0, len(candidates))
	for i, id := range candidates {
		if free[i] {
			ids = append(ids, int64(id))
		}
	}
	if len(ids) == 0 {
		return []trainer.Trainer{}, nil
	}

	found, err := f.trainers.ListWhere(ctx, store.Where(store.In("id", ids)).OrderBy("id"))
	if err != nil {
		return nil, apperr.Unexpected("booking.FindAvailableTrainers", err)
	}
	return found, nil
}

// candidates returns the distinct trainer ids linked to the service, sorted.
func (f *Finder) candidates(ctx context.Context, serviceID int) ([]int, error) {
	links, err := f.specialties.ListWhere(ctx, store.Where(store.Eq("service_id", serviceID)))
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(links))
	ids := make([]int, 0, len(links))
	for _, l := range links {
		if !seen[l.TrainerID] {
			seen[l.TrainerID] = true
			ids = append(ids, l.TrainerID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
