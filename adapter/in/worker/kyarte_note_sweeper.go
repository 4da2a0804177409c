// Package worker runs background jobs: the periodic note sweep and the
// external calendar export.
package worker

import (
	"context"
	"time"

	"kyarte_server/core/service/calendar"
	"kyarte_server/core/service/note"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SweeperConfig holds sweep scheduling configuration.
type SweeperConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string
	// JobTimeout bounds a single sweep run.
	JobTimeout time.Duration
}

func DefaultSweeperConfig() *SweeperConfig {
	return &SweeperConfig{
		Schedule:   "*/5 * * * *",
		JobTimeout: 2 * time.Minute,
	}
}

// NoteSweeper periodically drains the unprocessed-note backlog and
// pushes pending calendar events to the external calendar. Notes are
// normally analyzed at submission; the sweep catches anything left
// behind by crashes or bulk imports.
type NoteSweeper struct {
	processor *note.Processor
	sync      *calendar.SyncService
	config    *SweeperConfig
	cron      *cron.Cron
	log       zerolog.Logger
}

func NewNoteSweeper(processor *note.Processor, sync *calendar.SyncService, config *SweeperConfig, log zerolog.Logger) *NoteSweeper {
	if config == nil {
		config = DefaultSweeperConfig()
	}
	return &NoteSweeper{
		processor: processor,
		sync:      sync,
		config:    config,
		cron:      cron.New(),
		log:       log.With().Str("component", "note_sweeper").Logger(),
	}
}

// Start schedules the sweep and runs one pass immediately to clear any
// backlog from before the process started.
func (s *NoteSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.config.Schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.config.Schedule).Msg("note sweeper started")

	go s.runOnce()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *NoteSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("note sweeper stopped")
}

func (s *NoteSweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	start := time.Now()
	processed, err := s.processor.ProcessUnprocessed(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("note sweep failed")
		return
	}
	if processed > 0 {
		s.log.Info().
			Int("processed", processed).
			Dur("took", time.Since(start)).
			Msg("note sweep completed")
	}

	if s.sync != nil && s.sync.Enabled() {
		synced, err := s.sync.SyncPending(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("calendar export sweep failed")
			return
		}
		if synced > 0 {
			s.log.Info().Int("synced", synced).Msg("calendar export completed")
		}
	}
}
