package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterExpired(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)
	grace := 24 * time.Hour

	twoDaysAgo := now.Add(-48 * time.Hour)
	twelveHoursAgo := now.Add(-12 * time.Hour)

	records := []CanonicalRecord{
		{Company: "Old", Position: "x", Deadline: &twoDaysAgo},
		{Company: "Fresh", Position: "x", Deadline: &twelveHoursAgo},
		{Company: "Unknown", Position: "x", Deadline: nil},
	}

	got := FilterExpired(records, now, grace)

	assert.Len(t, got, 2)
	assert.Equal(t, "Fresh", got[0].Company)
	assert.Equal(t, "Unknown", got[1].Company)
}

func TestFilterExpiredNilDeadlineNeverDropped(t *testing.T) {
	records := []CanonicalRecord{
		{Company: "Rolling", Position: "x"},
	}

	farFuture := time.Date(2099, time.January, 1, 0, 0, 0, 0, time.Local)
	got := FilterExpired(records, farFuture, 0)

	assert.Len(t, got, 1)
}

func TestFilterExpiredZeroGrace(t *testing.T) {
	now := time.Now()
	justPast := now.Add(-time.Minute)

	records := []CanonicalRecord{{Company: "A", Position: "x", Deadline: &justPast}}

	assert.Empty(t, FilterExpired(records, now, 0))
	assert.Len(t, FilterExpired(records, now, time.Hour), 1)
}
