package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/display"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// fakeFetcher answers through fn and counts calls.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   int
	queries []string
	fn      func(ctx context.Context, query string) (weather.ForecastResponse, error)
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) FetchForecast(ctx context.Context, query string, days int) (weather.ForecastResponse, error) {
	f.mu.Lock()
	f.calls++
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if days != weather.ForecastWindow {
		return weather.ForecastResponse{}, fmt.Errorf("unexpected days %d", days)
	}
	return f.fn(ctx, query)
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type notices struct {
	mu   sync.Mutex
	list []display.Notice
}

func (n *notices) Notify(x display.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.list = append(n.list, x)
}

func (n *notices) All() []display.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]display.Notice(nil), n.list...)
}

type outcomes struct {
	mu   sync.Mutex
	list []string
}

func (o *outcomes) ObserveSearch(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.list = append(o.list, outcome)
}

func response(name string, days int) weather.ForecastResponse {
	r := weather.ForecastResponse{
		Location: weather.Location{Name: name, Country: "Nepal"},
		Current: weather.Current{
			TempC: 23.6, FeelsLikeC: 22.2, Humidity: 62, WindKph: 14.7, WindDir: "N",
			Condition: weather.Condition{Text: "Sunny", Icon: "//cdn.example/icon.png"},
		},
		Astronomy: weather.Astronomy{Sunrise: "06:00 AM", Sunset: "06:00 PM"},
	}
	for i := 0; i < days; i++ {
		r.Days = append(r.Days, weather.ForecastDay{
			Date: fmt.Sprintf("2026-10-%02d", 16+i), MaxTempC: 20.5, MinTempC: 10.4,
			ChanceOfRain: 10 * i, MaxWindKph: 7.5,
			Condition: weather.Condition{Text: "Sunny", Icon: "//cdn.example/day.png"},
		})
	}
	return r
}

var fixedNow = time.Date(2026, time.October, 16, 8, 0, 0, 0, time.UTC)

func newTestService(fn func(ctx context.Context, query string) (weather.ForecastResponse, error)) (*Service, *fakeFetcher, *store.Board, *notices, *outcomes) {
	f := &fakeFetcher{fn: fn}
	board := store.NewBoard()
	n := &notices{}
	rec := &outcomes{}
	svc := NewService(f, board, n, WithClock(func() time.Time { return fixedNow }), WithRecorder(rec))
	return svc, f, board, n, rec
}

func TestSearchRendersOnce(t *testing.T) {
	svc, f, board, n, rec := newTestService(func(ctx context.Context, q string) (weather.ForecastResponse, error) {
		return response("Kathmandu", 3), nil
	})

	if err := svc.Search(context.Background(), "  Kathmandu  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Calls() != 1 || f.queries[0] != "Kathmandu" {
		t.Fatalf("expected one call with trimmed query, got %d %v", f.Calls(), f.queries)
	}
	if board.Renders() != 1 {
		t.Fatalf("expected exactly one render, got %d", board.Renders())
	}
	if len(n.All()) != 0 {
		t.Fatalf("expected no notices, got %+v", n.All())
	}

	state, err := board.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Temperature != "24°C" || state.WindSpeed != "15 km/h" || state.Humidity != "62%" {
		t.Fatalf("unexpected slots: %+v", state)
	}
	if state.Icon != "https://cdn.example/icon.png" {
		t.Fatalf("unexpected icon %q", state.Icon)
	}
	if state.Date != "Fri Oct 16 2026" {
		t.Fatalf("date label must come from the clock, got %q", state.Date)
	}

	labels := []string{"Today", "Tomorrow", "Day After"}
	if len(state.Forecast) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(state.Forecast))
	}
	for i, card := range state.Forecast {
		if card.Day != labels[i] {
			t.Errorf("card %d labeled %q, want %q", i, card.Day, labels[i])
		}
		if card.High != "21°" || card.Low != "10°" {
			t.Errorf("card %d temps %q/%q", i, card.High, card.Low)
		}
	}

	if svc.CurrentQuery() != "Kathmandu" {
		t.Fatalf("expected current query Kathmandu, got %q", svc.CurrentQuery())
	}
	if len(rec.list) != 1 || rec.list[0] != OutcomeOK {
		t.Fatalf("expected ok outcome, got %v", rec.list)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, f, board, n, rec := newTestService(func(ctx context.Context, q string) (weather.ForecastResponse, error) {
		return response("X", 3), nil
	})

	for _, q := range []string{"", "   ", "\t\n"} {
		err := svc.Search(context.Background(), q)
		if !errors.Is(err, weather.ErrEmptyQuery) {
			t.Fatalf("expected ErrEmptyQuery for %q, got %v", q, err)
		}
	}

	if f.Calls() != 0 {
		t.Fatalf("expected no network calls, got %d", f.Calls())
	}
	if board.Renders() != 0 {
		t.Fatalf("expected no render, got %d", board.Renders())
	}
	all := n.All()
	if len(all) != 3 || all[0].Kind != display.NoticeEmptyQuery {
		t.Fatalf("expected one empty-query notice per call, got %+v", all)
	}
	if rec.list[0] != OutcomeEmptyQuery {
		t.Fatalf("expected empty_query outcome, got %v", rec.list)
	}
}

func TestSearchFailureLeavesDisplay(t *testing.T) {
	var fail error
	svc, f, board, n, _ := newTestService(func(ctx context.Context, q string) (weather.ForecastResponse, error) {
		if fail != nil {
			return weather.ForecastResponse{}, fail
		}
		return response("Kathmandu", 3), nil
	})

	if err := svc.Search(context.Background(), "Kathmandu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, _ := board.Current()

	cases := []struct {
		err  error
		kind display.NoticeKind
	}{
		{fmt.Errorf("%w: status 400", weather.ErrNotFound), display.NoticeNotFound},
		{fmt.Errorf("%w: connection refused", weather.ErrTransport), display.NoticeFailure},
		{fmt.Errorf("%w: unexpected EOF", weather.ErrMalformedResponse), display.NoticeFailure},
	}

	for i, c := range cases {
		fail = c.err
		err := svc.Search(context.Background(), "Nowhere")
		if !errors.Is(err, c.err) {
			t.Fatalf("expected %v, got %v", c.err, err)
		}

		all := n.All()
		if len(all) != i+1 {
			t.Fatalf("expected exactly one notice per failure, got %d", len(all))
		}
		if all[i].Kind != c.kind {
			t.Fatalf("expected %s notice, got %s", c.kind, all[i].Kind)
		}

		after, _ := board.Current()
		if after.Location != before.Location || len(after.Forecast) != len(before.Forecast) {
			t.Fatalf("display changed after failure: %+v", after)
		}
	}

	if board.Renders() != 1 {
		t.Fatalf("expected failures not to render, got %d renders", board.Renders())
	}
	if f.Calls() != 4 {
		t.Fatalf("expected one call per search, got %d", f.Calls())
	}
	if svc.CurrentQuery() != "Kathmandu" {
		t.Fatalf("current query must not change on failure, got %q", svc.CurrentQuery())
	}
}

func TestSecondSearchReplacesEverything(t *testing.T) {
	svc, _, board, _, _ := newTestService(func(ctx context.Context, q string) (weather.ForecastResponse, error) {
		if q == "Pokhara" {
			return response("Pokhara", 1), nil
		}
		return response("Kathmandu", 3), nil
	})

	if err := svc.Search(context.Background(), "Kathmandu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Search(context.Background(), "Pokhara"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, _ := board.Current()
	if state.Location != "Pokhara, Nepal" {
		t.Fatalf("expected Pokhara, got %q", state.Location)
	}
	if len(state.Forecast) != 1 || state.Forecast[0].Day != "Today" {
		t.Fatalf("expected a single fresh card, got %+v", state.Forecast)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	svc, _, board, n, rec := newTestService(func(ctx context.Context, q string) (weather.ForecastResponse, error) {
		if q == "Slow" {
			close(started)
			<-release
			return response("Slow", 3), nil
		}
		return response("Fast", 2), nil
	})

	slowErr := make(chan error, 1)
	go func() {
		slowErr <- svc.Search(context.Background(), "Slow")
	}()
	<-started

	if err := svc.Search(context.Background(), "Fast"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(release)

	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}

	state, _ := board.Current()
	if state.Location != "Fast, Nepal" {
		t.Fatalf("stale response overwrote the display: %q", state.Location)
	}
	if board.Renders() != 1 {
		t.Fatalf("expected one render, got %d", board.Renders())
	}
	if len(n.All()) != 0 {
		t.Fatalf("a superseded search must not notify, got %+v", n.All())
	}
	if svc.CurrentQuery() != "Fast" {
		t.Fatalf("expected current query Fast, got %q", svc.CurrentQuery())
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.list[len(rec.list)-1] != OutcomeSuperseded {
		t.Fatalf("expected superseded outcome last, got %v", rec.list)
	}
}

func TestRenderIsDirect(t *testing.T) {
	svc, f, board, _, _ := newTestService(nil)

	svc.Render(response("Lalitpur", 3))

	if f.Calls() != 0 {
		t.Fatal("Render must not fetch")
	}
	state, err := board.Current()
	if err != nil || state.Location != "Lalitpur, Nepal" {
		t.Fatalf("unexpected state %+v (%v)", state, err)
	}
}
