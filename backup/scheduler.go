package backup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultInterval = 24 * time.Hour

// Scheduler runs the backup job on a fixed interval. OnComplete, when set,
// fires after each successful run (the facade uses it to publish an event).
type Scheduler struct {
	job        *Job
	interval   time.Duration
	logger     *zap.Logger
	OnComplete func(*Result)

	stopOnce sync.Once
	stop     chan struct{}
}

func NewScheduler(job *Job, interval time.Duration, logger *zap.Logger) *Scheduler {

	if interval <= 0 {
		interval = defaultInterval
	}

	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Scheduler) runOnce() {

	result, err := s.job.Run(context.Background())
	if err != nil {
		s.logger.Error("scheduled backup failed", zap.Error(err))
		return
	}

	if s.OnComplete != nil {
		s.OnComplete(result)
	}
}
