package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorOfflineWithoutSession(t *testing.T) {
	m := New(nil, time.Second, nil)
	m.refresh()

	assert.False(t, m.IsOnline())

	status := m.GetStatus()
	assert.False(t, status.Cassandra)
	assert.False(t, status.LastCheck.IsZero())
}
