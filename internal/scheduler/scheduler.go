// Package scheduler runs the fetch cycle on a fixed wall-clock interval and
// hands each successful snapshot to the publisher. Cycles are not reentrant:
// a tick that fires while the previous cycle is still fetching is skipped,
// so a slow source delays the next broadcast instead of stacking cycles.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/sa-express-news/2018-primaries-server/internal/metrics"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
	"github.com/sa-express-news/2018-primaries-server/internal/source"
)

// SnapshotGenerator produces the next snapshot from the previous one.
type SnapshotGenerator interface {
	Generate(ctx context.Context, previous models.Snapshot) (models.Snapshot, error)
}

// Publisher receives each successful snapshot.
type Publisher interface {
	Publish(snapshot models.Snapshot) error
}

// Archiver persists snapshots for history. Optional.
type Archiver interface {
	Save(ctx context.Context, snapshot models.Snapshot) error
}

// Scheduler manages the periodic snapshot cycle.
type Scheduler struct {
	cron      *cron.Cron
	generator SnapshotGenerator
	publisher Publisher
	archiver  Archiver
	logger    *logrus.Logger
	interval  time.Duration

	cycleMu sync.Mutex // held for the duration of one cycle

	mu        sync.RWMutex
	isRunning bool
	jobID     cron.EntryID
	current   models.Snapshot
}

// New creates a scheduler seeded with the bootstrap AP cursor. archiver may
// be nil when history is disabled.
func New(generator SnapshotGenerator, publisher Publisher, archiver Archiver, bootstrapURL string, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		generator: generator,
		publisher: publisher,
		archiver:  archiver,
		logger:    logger,
		interval:  interval,
		current:   models.Snapshot{NextAPRequestURL: bootstrapURL},
	}
}

// Current returns the last known-good snapshot.
func (s *Scheduler) Current() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// RunCycle executes one fetch-reconcile-publish cycle. A failed cycle
// leaves the previous snapshot authoritative.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	start := time.Now()
	metrics.CyclesTotal.Inc()

	next, err := s.generator.Generate(ctx, s.Current())
	if err != nil {
		metrics.CycleErrorsTotal.Inc()
		var srcErr source.Error
		if errors.As(err, &srcErr) {
			metrics.SourceFetchErrorsTotal.WithLabelValues(srcErr.Source).Inc()
		}
		return err
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	metrics.CycleDuration.Observe(time.Since(start).Seconds())
	metrics.PrimariesCurrent.Set(float64(len(next.Primaries)))

	if err := s.publisher.Publish(next); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	if s.archiver != nil {
		// History is best effort; an archive failure never fails the cycle.
		if err := s.archiver.Save(ctx, next); err != nil {
			s.logger.WithError(err).Warn("Failed to archive snapshot")
		}
	}

	return nil
}

// Schedule registers the polling job.
func (s *Scheduler) Schedule() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	intervalSeconds := int(s.interval.Seconds())
	if intervalSeconds < 5 {
		intervalSeconds = 5
	}

	jobFunc := func() {
		if !s.cycleMu.TryLock() {
			metrics.CyclesSkippedTotal.Inc()
			s.logger.Warn("Previous cycle still running, skipping tick")
			return
		}
		defer s.cycleMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 10*s.interval)
		defer cancel()

		if err := s.RunCycle(ctx); err != nil {
			s.logger.WithError(err).Error("Snapshot cycle failed, previous snapshot remains authoritative")
		}
	}

	jobID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobID = jobID
	s.logger.Infof("Scheduled snapshot cycle every %d seconds", intervalSeconds)

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if s.jobID == 0 {
		return fmt.Errorf("no job scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight cycle.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	// Wait without holding s.mu: an in-flight RunCycle takes s.mu to
	// store the new snapshot, so waiting under the lock would deadlock.
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
