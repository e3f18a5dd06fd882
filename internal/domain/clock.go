package domain

import (
	"sync"
	"time"
)

// Clock supplies order timestamps. The checkout engine takes it as an
// explicit dependency so demo backdating never leaks in as ambient state.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AdjustableClock keeps an artificial calendar date while always reporting
// the current wall time-of-day. Managers use it to backdate demo orders.
type AdjustableClock struct {
	mu   sync.Mutex
	date time.Time
}

func NewAdjustableClock() *AdjustableClock {
	return &AdjustableClock{date: time.Now()}
}

// Now returns the artificial date combined with the current wall time-of-day.
func (c *AdjustableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	return time.Date(
		c.date.Year(), c.date.Month(), c.date.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(),
		now.Location(),
	)
}

// SetDate replaces the artificial date.
func (c *AdjustableClock) SetDate(date time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.date = date
	return c.date
}

// AdvanceDays shifts the artificial date forward by n days.
func (c *AdjustableClock) AdvanceDays(n int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.date = c.date.AddDate(0, 0, n)
	return c.date
}

// Reset restores the artificial date to today.
func (c *AdjustableClock) Reset() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.date = time.Now()
	return c.date
}
