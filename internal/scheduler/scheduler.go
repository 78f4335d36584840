// Package scheduler runs periodic CSV snapshots of the supply history.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// snapshotTimeout bounds a single snapshot run.
const snapshotTimeout = 2 * time.Minute

// Scheduler writes the first history page to an export sink on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	src      supply.Source
	sink     export.Sink
	params   supply.Params
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// New creates a scheduler for the given standard 5-field cron expression.
// params selects the page written on each run.
func New(schedule string, src supply.Source, sink export.Sink, params supply.Params, loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", schedule, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		src:      src,
		sink:     sink,
		params:   params,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runScheduled); err != nil {
		return fmt.Errorf("scheduling snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	path, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("snapshot written", zap.String("path", path))
}

// Snapshot fetches the configured page and hands it to the sink as CSV.
func (s *Scheduler) Snapshot(ctx context.Context) (string, error) {
	page, err := s.src.ListHistory(ctx, s.params)
	if err != nil {
		return "", fmt.Errorf("fetching history: %w", err)
	}

	data := export.CSV(page.Items, s.loc)
	path, err := s.sink.Download(export.CSVFilename(s.now()), data)
	if err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}
