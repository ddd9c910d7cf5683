package scheduler

import (
	"context"
	"time"
)

// HoldSweeper периодически удаляет истекшие удержания
// Это оптимизация: корректность обеспечивает ленивая чистка на чтении,
// sweeper лишь не дает мертвым строкам накапливаться
type HoldSweeper struct {
	holdRepo     HoldRepository
	timeProvider TimeProvider
	interval     time.Duration
	logger       Logger
}

// NewHoldSweeper создает новый job чистки удержаний
func NewHoldSweeper(holdRepo HoldRepository, timeProvider TimeProvider, interval time.Duration, logger Logger) *HoldSweeper {
	return &HoldSweeper{
		holdRepo:     holdRepo,
		timeProvider: timeProvider,
		interval:     interval,
		logger:       logger,
	}
}

// Run запускает цикл чистки до отмены контекста
func (s *HoldSweeper) Run(ctx context.Context) {
	s.logger.Info("HoldSweeper: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("HoldSweeper: stopped")
			return
		case <-ticker.C:
			purged, err := s.holdRepo.PurgeExpired(ctx, s.timeProvider.Now())
			if err != nil {
				s.logger.Error("HoldSweeper: purge failed: %v", err)
				continue
			}
			if purged > 0 {
				s.logger.Info("HoldSweeper: purged %d expired holds", purged)
			}
		}
	}
}
