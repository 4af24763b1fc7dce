package wind

import (
	"context"

	"github.com/google/uuid"

	"github.com/vhenriksson/wind-monitor/internal/logger"
)

// Service runs acquisition cycles against the configured provider and hands
// each outcome to the store. It keeps no state between cycles; the store
// holds the result, the scheduler holds the retry budget.
type Service struct {
	provider Provider
	fetcher  *Fetcher
	store    Store
	location Location
}

func NewService(provider Provider, fetcher *Fetcher, store Store, location Location) *Service {
	return &Service{
		provider: provider,
		fetcher:  fetcher,
		store:    store,
		location: location,
	}
}

// AcquireOnce performs one build, fetch, parse sequence and returns the
// normalized observation. It never touches the store.
func (s *Service) AcquireOnce(ctx context.Context) (Observation, error) {
	endpoint := s.provider.BuildURL(s.location)
	body, err := s.fetcher.Fetch(ctx, endpoint, s.provider.Headers())
	if err != nil {
		return Observation{}, err
	}
	return s.provider.Parse(body)
}

// RunCycle runs one acquisition and records the outcome: a fresh
// observation on success, the failure state otherwise. The returned error
// keeps its full taxonomy for the caller; the store only learns that the
// cycle failed.
func (s *Service) RunCycle(ctx context.Context) error {
	cycle := uuid.NewString()[:8]

	obs, err := s.AcquireOnce(ctx)
	if err != nil {
		s.store.SetFailure()
		logger.Errorf("wind: cycle %s: %s acquisition failed: %v", cycle, s.provider.Name(), err)
		return err
	}

	s.store.SetObservation(obs)
	logger.Infof("wind: cycle %s: %s reports %.1f m/s (%s, force %d) from %s",
		cycle, s.provider.Name(), obs.WindSpeed,
		ClassifyDescriptive(obs.WindSpeed), ClassifyBeaufort(obs.WindSpeed),
		ClassifyDirection(obs.WindDirection, DirectionCompass))
	return nil
}
