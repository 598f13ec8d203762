package retention

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/rs/zerolog/log"
)

const sweepInterval = 1 * time.Hour

// Sweeper periodically deletes notifications older than the retention window.
// Deleted notifications are gone for good; clients only ever see recent ones.
type Sweeper struct {
	store         db.Store
	retentionDays int
	scheduler     gocron.Scheduler
}

func NewSweeper(store db.Store, retentionDays int) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Sweeper{
		store:         store,
		retentionDays: retentionDays,
		scheduler:     scheduler,
	}, nil
}

// Start schedules the hourly sweep.
func (s *Sweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(
			func() {
				s.sweep()
			},
		),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.store.DeleteNotificationsBefore(context.Background(), cutoff)
	if err != nil {
		log.Err(err).Time("cutoff", cutoff).Msg("failed to sweep old notifications")
		return
	}

	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("swept old notifications")
	}
}
