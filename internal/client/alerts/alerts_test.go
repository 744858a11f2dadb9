package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyKeepsInsertionOrder(t *testing.T) {
	c := NewChannel()

	c.Notify("first", SeverityDanger, time.Minute)
	c.Notify("second", SeveritySuccess, time.Minute)
	c.Notify("third", SeverityDanger, time.Minute)

	snap := c.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "first", snap[0].Message)
	assert.Equal(t, "second", snap[1].Message)
	assert.Equal(t, "third", snap[2].Message)
}

func TestAlertsExpire(t *testing.T) {
	c := NewChannel()

	c.Notify("short-lived", SeverityDanger, 20*time.Millisecond)
	c.Notify("long-lived", SeverityDanger, time.Minute)
	require.Len(t, c.Snapshot(), 2)

	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return len(snap) == 1 && snap[0].Message == "long-lived"
	}, time.Second, 5*time.Millisecond)
}

func TestDismissBeforeTTL(t *testing.T) {
	c := NewChannel()

	id := c.Notify("dismiss me", SeverityDanger, time.Minute)
	other := c.Notify("keep me", SeverityDanger, time.Minute)

	c.Dismiss(id)

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, other, snap[0].ID)
}

func TestDoubleDismissIsNoop(t *testing.T) {
	c := NewChannel()

	id := c.Notify("once", SeverityDanger, time.Minute)
	c.Dismiss(id)
	c.Dismiss(id)
	c.Dismiss("never-existed")

	assert.Empty(t, c.Snapshot())
}

func TestNotifyDefaultTTL(t *testing.T) {
	c := NewChannel()

	id := c.Notify("default ttl", SeveritySuccess, 0)
	assert.NotEmpty(t, id)
	assert.Len(t, c.Snapshot(), 1)
}

func TestIndependentAlerts(t *testing.T) {
	c := NewChannel()

	// No de-duplication: identical messages are independent alerts
	a := c.Danger("Invalid username / password")
	b := c.Danger("Invalid username / password")
	assert.NotEqual(t, a, b)
	assert.Len(t, c.Snapshot(), 2)

	c.Dismiss(a)
	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, b, snap[0].ID)
}
