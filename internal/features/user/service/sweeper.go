package service

import (
	"context"
	"time"

	"smartclinic-backend/internal/common/logger"
	"smartclinic-backend/internal/features/user/repository"
)

// Sweeper archives profiles that have been silent longer than the
// inactivity threshold. It runs on its own ticker, independent of and
// non-blocking toward message handling.
type Sweeper struct {
	repo      repository.UserRepository
	interval  time.Duration
	threshold time.Duration
	stopChan  chan struct{}
}

func NewSweeper(repo repository.UserRepository, interval, threshold time.Duration) *Sweeper {
	return &Sweeper{
		repo:      repo,
		interval:  interval,
		threshold: threshold,
		stopChan:  make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	close(s.stopChan)
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ids, err := s.repo.ArchiveInactive(ctx, s.threshold)
	if err != nil {
		logger.Error().Err(err).Msg("Inactivity sweep failed")
		return
	}

	if len(ids) > 0 {
		logger.Info().Int("archived", len(ids)).Msg("Archived inactive users")
	}
}
