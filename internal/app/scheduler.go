package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper - фоновая задача, выполняемая по таймеру
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) int
}

// Scheduler периодически запускает уборку временных уведомлений
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт планировщик с заданным периодом
func NewScheduler(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runSweepTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) runSweepTask(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sweeper.Sweep(ctx, s.now()); n > 0 {
				s.logger.Debug("Expired notices removed", zap.Int("count", n))
			}
		case <-s.stopChan:
			s.logger.Info("Notice sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Notice sweep task cancelled")
			return
		}
	}
}
