package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/display"
)

var (
	// ErrNotFound is returned when nothing has been rendered yet.
	ErrNotFound = errors.New("no weather data rendered yet")
)

// Board is a concurrency-safe in-memory display surface. It keeps only the
// current DisplayState; every Show replaces it.
type Board struct {
	mu sync.RWMutex

	state     *display.DisplayState
	updatedAt time.Time
	renders   int

	// pending notice, consumed once like a modal alert
	notice *display.Notice
}

var (
	_ display.Surface  = (*Board)(nil)
	_ display.Notifier = (*Board)(nil)
)

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{}
}

// Show replaces the current state wholesale.
func (b *Board) Show(state display.DisplayState) {
	st := state.Clone()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = &st
	b.updatedAt = time.Now().UTC()
	b.renders++
}

// Notify records n as the pending notice, replacing any unread one.
func (b *Board) Notify(n display.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notice = &n
}

// Current returns a copy of the displayed state.
func (b *Board) Current() (display.DisplayState, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.state == nil {
		return display.DisplayState{}, ErrNotFound
	}
	return b.state.Clone(), nil
}

// UpdatedAt reports when the state was last replaced (zero before the first render).
func (b *Board) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}

// Renders returns how many times Show has been called.
func (b *Board) Renders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.renders
}

// TakeNotice returns the pending notice and clears it.
func (b *Board) TakeNotice() (display.Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.notice == nil {
		return display.Notice{}, false
	}
	n := *b.notice
	b.notice = nil
	return n, true
}
