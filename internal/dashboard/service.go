package dashboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/display"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrSuperseded is returned by Search when a newer search rendered first and
// this response was discarded.
var ErrSuperseded = errors.New("search superseded by a newer one")

// Outcome labels recorded per search.
const (
	OutcomeOK         = "ok"
	OutcomeEmptyQuery = "empty_query"
	OutcomeNotFound   = "not_found"
	OutcomeTransport  = "transport"
	OutcomeMalformed  = "malformed"
	OutcomeSuperseded = "superseded"
)

// Recorder receives one observation per Search call.
type Recorder interface {
	ObserveSearch(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, time.Duration) {}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for the date label.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// Service runs the fetch-and-render pipeline. It is safe for concurrent use.
type Service struct {
	fetcher  weather.Fetcher
	surface  display.Surface
	notifier display.Notifier
	recorder Recorder
	now      func() time.Time

	mu        sync.Mutex
	issued    uint64 // generation handed to the latest search
	rendered  uint64 // generation of the displayed data
	lastQuery string
}

// NewService creates a new Service.
func NewService(fetcher weather.Fetcher, surface display.Surface, notifier display.Notifier, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		surface:  surface,
		notifier: notifier,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search fetches the forecast for query and renders it. On failure the display
// is left untouched and exactly one notice is sent.
func (s *Service) Search(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		s.recorder.ObserveSearch(OutcomeEmptyQuery, 0)
		s.notifier.Notify(display.NoticeFor(weather.ErrEmptyQuery))
		return weather.ErrEmptyQuery
	}

	id := uuid.NewString()
	gen := s.nextGeneration()

	log.Printf("DEBUG: search %s (gen %d) for %q via %s", id, gen, q, s.fetcher.Name())

	start := time.Now()
	data, err := s.fetcher.FetchForecast(ctx, q, weather.ForecastWindow)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("ERROR: search %s for %q failed: %v", id, q, err)
		s.recorder.ObserveSearch(outcomeOf(err), elapsed)
		s.notifier.Notify(display.NoticeFor(err))
		return err
	}

	if !s.renderIfCurrent(gen, q, data) {
		log.Printf("INFO: search %s (gen %d) for %q discarded; a newer result is displayed", id, gen, q)
		s.recorder.ObserveSearch(OutcomeSuperseded, elapsed)
		return ErrSuperseded
	}

	s.recorder.ObserveSearch(OutcomeOK, elapsed)
	return nil
}

// Render projects data onto the surface unconditionally.
func (s *Service) Render(data weather.ForecastResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.show(data)
}

// CurrentQuery is the query behind the displayed data, or "" before any render.
func (s *Service) CurrentQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

func (s *Service) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// renderIfCurrent renders unless a search issued later has already rendered.
func (s *Service) renderIfCurrent(gen uint64, query string, data weather.ForecastResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.rendered {
		return false
	}
	s.show(data)
	s.rendered = gen
	s.lastQuery = query
	return true
}

// show must be called with s.mu held.
func (s *Service) show(data weather.ForecastResponse) {
	s.surface.Show(display.Project(data, s.now()))
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, weather.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, weather.ErrMalformedResponse):
		return OutcomeMalformed
	default:
		return OutcomeTransport
	}
}
