package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-campus-sync/internal/scraper"
)

func TestPipelineRunTwoSourcesSameJob(t *testing.T) {
	// two boards list the same posting with differently formatted
	// deadlines; exactly one record survives, carrying the first-seen one
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.Local)

	raw := []scraper.RawRecord{
		{
			scraper.FieldSource:       "ArkBoard",
			scraper.FieldCompany:      "Acme Corp",
			scraper.FieldPosition:     "Backend Intern",
			scraper.FieldDeadlineText: "2025-12-01",
			scraper.FieldApplyURL:     "https://acme.example.com/apply",
		},
		{
			scraper.FieldSource:       "GiveMeOC",
			scraper.FieldCompany:      "Acme Corp",
			scraper.FieldPosition:     "Backend Intern",
			scraper.FieldDeadlineText: "2025/12/01",
		},
	}

	norm := NewNormalizer(DefaultRules(), DefaultMarkers())
	norm.now = func() time.Time { return now }
	pipe := New(norm, 24*time.Hour)

	got := pipe.Run(raw, now)

	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, "Acme Corp", r.Company)
	assert.Equal(t, "Backend Intern", r.Position)
	require.NotNil(t, r.Deadline)
	assert.True(t, localDate(2025, time.December, 1).Equal(*r.Deadline))
	require.NotNil(t, r.ApplyLink)
	assert.Equal(t, "https://acme.example.com/apply", r.ApplyLink.URL)
	assert.True(t, now.Equal(r.LastUpdated))
}

func TestPipelineRunDropsExpiredAndBlank(t *testing.T) {
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.Local)

	raw := []scraper.RawRecord{
		{
			scraper.FieldCompany:      "Stale Co",
			scraper.FieldPosition:     "Intern",
			scraper.FieldDeadlineText: "2024-01-01",
		},
		{
			scraper.FieldCompany:      "",
			scraper.FieldPosition:     "Orphan",
			scraper.FieldDeadlineText: "2026-01-01",
		},
		{
			scraper.FieldCompany:      "Rolling Co",
			scraper.FieldPosition:     "Intern",
			scraper.FieldDeadlineText: "滚动招聘",
		},
	}

	norm := NewNormalizer(DefaultRules(), DefaultMarkers())
	norm.now = func() time.Time { return now }
	pipe := New(norm, 24*time.Hour)

	got := pipe.Run(raw, now)

	require.Len(t, got, 1)
	assert.Equal(t, "Rolling Co", got[0].Company)
	assert.Nil(t, got[0].Deadline)
}

func TestPipelineSharedSnapshotTime(t *testing.T) {
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.Local)

	raw := []scraper.RawRecord{
		{scraper.FieldCompany: "A", scraper.FieldPosition: "x"},
		{scraper.FieldCompany: "B", scraper.FieldPosition: "y"},
	}

	norm := NewNormalizer(DefaultRules(), DefaultMarkers())
	norm.now = func() time.Time { return now }
	got := New(norm, time.Hour).Run(raw, now)

	require.Len(t, got, 2)
	for _, r := range got {
		assert.True(t, now.Equal(r.LastUpdated))
		assert.NotEmpty(t, r.Company)
		assert.NotEmpty(t, r.Position)
	}
}

func TestMakeLink(t *testing.T) {
	assert.Nil(t, makeLink("", "x"))
	assert.Nil(t, makeLink("javascript:void(0)", "x"))
	assert.Nil(t, makeLink("/relative/path", "x"))

	link := makeLink("https://example.com/a", "网申入口")
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com/a", link.URL)
	assert.Equal(t, "网申入口", link.Text)
}
