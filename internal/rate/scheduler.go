package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = 24 * time.Hour

type Refresher interface {
	Refresh(ctx context.Context) (*Dataset, error)
}

// Scheduler periodically reloads the dataset so the dashboard picks up new quarters.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		ds, refreshErr := s.refresher.Refresh(jobCtx)
		if refreshErr != nil {
			logrus.WithError(refreshErr).Errorf("Refresh rates job %s failed", execID)
			return
		}
		logrus.Infof("Refresh rates job %s loaded %d records (%s to %s)",
			execID, ds.Summary.TotalRecords, ds.Summary.DateRange.Start, ds.Summary.DateRange.End)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler. It is safe to call more than once and
// concurrently with the context watcher started by Start.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(refresher Refresher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Scheduler{refresher: refresher, interval: interval}
}
