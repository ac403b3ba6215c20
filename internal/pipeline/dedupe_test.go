package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-campus-sync/internal/scraper"
)

func rec(company, position, deadline string) scraper.RawRecord {
	return scraper.RawRecord{
		scraper.FieldCompany:      company,
		scraper.FieldPosition:     position,
		scraper.FieldDeadlineText: deadline,
	}
}

func TestDedupeFirstSeenWins(t *testing.T) {
	records := []scraper.RawRecord{
		rec("Acme Corp", "Backend Intern", "2025-12-01"),
		rec("Acme Corp", "Backend Intern", "2025/12/01"),
		rec("Acme Corp", "Frontend Intern", "2025-12-01"),
	}

	got := Dedupe(records)

	assert.Len(t, got, 2)
	assert.Equal(t, "2025-12-01", got[0][scraper.FieldDeadlineText])
	assert.Equal(t, "Frontend Intern", got[1][scraper.FieldPosition])
}

func TestDedupeTrimsIdentityKey(t *testing.T) {
	records := []scraper.RawRecord{
		rec("Acme Corp", "Backend Intern", ""),
		rec("  Acme Corp  ", " Backend Intern ", ""),
	}

	assert.Len(t, Dedupe(records), 1)
}

func TestDedupeDropsBlankCompanyOrPosition(t *testing.T) {
	records := []scraper.RawRecord{
		rec("", "Backend Intern", ""),
		rec("   ", "Backend Intern", ""),
		rec("Acme Corp", "", ""),
		rec("Acme Corp", "Backend Intern", ""),
	}

	got := Dedupe(records)
	assert.Len(t, got, 1)
	assert.Equal(t, "Acme Corp", got[0][scraper.FieldCompany])
}

func TestDedupeIdempotent(t *testing.T) {
	records := []scraper.RawRecord{
		rec("Acme Corp", "Backend Intern", "a"),
		rec("Beta Inc", "Data Intern", "b"),
		rec("Acme Corp", "Backend Intern", "c"),
	}

	once := Dedupe(records)
	twice := Dedupe(once)

	assert.Equal(t, once, twice)
}

func TestDedupeOutputKeysUnique(t *testing.T) {
	records := []scraper.RawRecord{
		rec("A", "x", ""),
		rec("B", "x", ""),
		rec("A", "y", ""),
		rec("A", "x", ""),
		rec("B", "x", ""),
	}

	got := Dedupe(records)

	seen := map[[2]string]bool{}
	for _, r := range got {
		key := [2]string{r[scraper.FieldCompany], r[scraper.FieldPosition]}
		assert.False(t, seen[key], "duplicate key %v in output", key)
		seen[key] = true
	}
	assert.Len(t, got, 3)
}
