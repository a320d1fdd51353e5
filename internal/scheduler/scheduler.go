package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Searcher is the part of the pipeline the scheduler drives.
type Searcher interface {
	Search(ctx context.Context, query string) error
	CurrentQuery() string
}

// Scheduler performs the startup load and, optionally, periodic refreshes of
// the displayed place.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	searcher     Searcher
	defaultQuery string
	interval     time.Duration
	timeout      time.Duration
}

// New creates a new Scheduler. A non-positive interval runs the job only once.
func New(defaultQuery string, interval time.Duration, searcher Searcher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:    s,
		searcher:     searcher,
		defaultQuery: defaultQuery,
		interval:     interval,
		timeout:      30 * time.Second,
	}
}

// Start schedules the job and starts the underlying scheduler. The first run
// happens immediately.
func (s *Scheduler) Start() error {
	var err error
	if s.interval <= 0 {
		_, err = s.scheduler.Every(1).Day().LimitRunsTo(1).Do(s.run)
	} else {
		_, err = s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	}
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) run() {
	query := s.searcher.CurrentQuery()
	if query == "" {
		query = s.defaultQuery
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log.Printf("scheduler: loading weather for %q", query)
	if err := s.searcher.Search(ctx, query); err != nil {
		log.Printf("scheduler: load failed for %q: %v", query, err)
	}
}
