// Package alerts is a short-lived queue of user-visible messages. Each alert
// removes itself after its TTL unless dismissed first.
package alerts

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Severity classifies an alert for display
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeveritySuccess Severity = "success"
)

// DefaultTTL is how long an alert stays up unless dismissed
const DefaultTTL = 5 * time.Second

// Alert is one user-visible message
type Alert struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Channel holds alerts in insertion order. Safe for concurrent use; the
// expiry timers call back into Dismiss, which is idempotent.
type Channel struct {
	mu     sync.Mutex
	alerts []Alert
	timers map[string]*time.Timer
}

// NewChannel creates an empty alert channel
func NewChannel() *Channel {
	return &Channel{
		timers: make(map[string]*time.Timer),
	}
}

// Notify appends an alert and schedules its removal after ttl
// (DefaultTTL when ttl <= 0). Returns the alert id.
func (c *Channel) Notify(message string, severity Severity, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	id := ulid.Make().String()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.alerts = append(c.alerts, Alert{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	})
	c.timers[id] = time.AfterFunc(ttl, func() {
		c.Dismiss(id)
	})

	return id
}

// Danger posts an error alert with the default TTL
func (c *Channel) Danger(message string) string {
	return c.Notify(message, SeverityDanger, DefaultTTL)
}

// Success posts a success alert with the default TTL
func (c *Channel) Success(message string) string {
	return c.Notify(message, SeveritySuccess, DefaultTTL)
}

// Dismiss removes an alert before its TTL elapses. Dismissing an unknown or
// already-removed id is a no-op.
func (c *Channel) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	for i, a := range c.alerts {
		if a.ID == id {
			c.alerts = append(c.alerts[:i], c.alerts[i+1:]...)
			break
		}
	}
}

// Snapshot returns the current alerts in insertion order
func (c *Channel) Snapshot() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}
