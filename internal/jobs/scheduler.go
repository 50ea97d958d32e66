package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"emkaan/api/internal/service"
)

// Scheduler periodically rebuilds the cached page lists so anonymous reads
// stay warm between content edits.
type Scheduler struct {
	cron    *cron.Cron
	content *service.ContentService
	log     zerolog.Logger
}

func NewScheduler(content *service.ContentService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		content: content,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.warmPageCache); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) warmPageCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.content.WarmPageCache(ctx); err != nil {
		s.log.Error().Err(err).Msg("page cache warm failed")
		return
	}
	s.log.Debug().Msg("page cache warmed")
}
