package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider resolves "now" and the calendar location the chart is laid out in.
type TimeProvider struct {
	location *time.Location
	clock    func() time.Time
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// NewTimeProvider returns a provider for timezone ("" and "Local" mean the
// process's local zone).
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	provider := &TimeProvider{clock: time.Now}
	if err := provider.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return provider, nil
}

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	provider, err := NewTimeProvider(timezone)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance
// If not initialized, it defaults to Local timezone
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local, clock: time.Now}
	}
	return globalTimeProvider
}

// LoadLocation resolves a timezone name, treating "" and "Local" as time.Local.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Europe/London, Australia/Sydney", timezone, err)
	}
	return loc, nil
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.location = loc
	return nil
}

// SetClock replaces the wall clock, mainly for tests.
func (tp *TimeProvider) SetClock(clock func() time.Time) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.clock = clock
}

// Location returns the configured location
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	if tp.location == nil {
		return time.Local
	}
	return tp.location
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	clock := tp.clock
	tp.mu.RUnlock()
	if clock == nil {
		clock = time.Now
	}
	return clock().In(tp.Location())
}

// In converts a time to the configured timezone
func (tp *TimeProvider) In(t time.Time) time.Time {
	return t.In(tp.Location())
}

// Format formats a time according to the layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	return tp.In(t).Format(layout)
}
