package pipeline

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"go-campus-sync/internal/scraper"
)

// Dedupe collapses records onto the (company, position) identity key,
// preserving first-seen order. First occurrence wins; later duplicates
// are dropped whole, no field merging. Records with a blank company or
// position are discarded outright.
func Dedupe(records []scraper.RawRecord) []scraper.RawRecord {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]scraper.RawRecord, 0, len(records))

	for _, r := range records {
		company := strings.TrimSpace(r[scraper.FieldCompany])
		position := strings.TrimSpace(r[scraper.FieldPosition])
		if company == "" || position == "" {
			continue
		}
		key := company + "\x00" + position
		if !seen.Add(key) {
			continue
		}
		out = append(out, r)
	}
	return out
}
