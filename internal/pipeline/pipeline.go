// Normalize -> dedupe -> expiry filter
// The one pass that turns noisy scraped rows into the canonical set

package pipeline

import (
	"log"
	"strings"
	"time"

	"go-campus-sync/internal/scraper"
)

type Pipeline struct {
	norm  *Normalizer
	grace time.Duration
}

func New(norm *Normalizer, grace time.Duration) *Pipeline {
	return &Pipeline{norm: norm, grace: grace}
}

// Run shapes the unioned raw record stream into canonical records.
// now is both the run snapshot (LastUpdated) and the expiry reference.
func (p *Pipeline) Run(raw []scraper.RawRecord, now time.Time) []CanonicalRecord {
	normalized := make([]scraper.RawRecord, 0, len(raw))
	for _, r := range raw {
		normalized = append(normalized, p.norm.Normalize(r))
	}

	unique := Dedupe(normalized)
	log.Printf("🔍 Deduplication: %d raw -> %d unique records", len(raw), len(unique))

	canonical := make([]CanonicalRecord, 0, len(unique))
	for _, r := range unique {
		canonical = append(canonical, p.toCanonical(r, now))
	}

	kept := FilterExpired(canonical, now, p.grace)
	log.Printf("⏳ Expiry filter: %d -> %d records (grace %s)", len(canonical), len(kept), p.grace)
	return kept
}

func (p *Pipeline) toCanonical(r scraper.RawRecord, now time.Time) CanonicalRecord {
	return CanonicalRecord{
		Company:          r[scraper.FieldCompany],
		Position:         r[scraper.FieldPosition],
		CompanyType:      r[scraper.FieldCompanyType],
		Industry:         r[scraper.FieldIndustry],
		Location:         r[scraper.FieldLocation],
		TargetClass:      r[scraper.FieldTargetClass],
		ApplyLink:        makeLink(r[scraper.FieldApplyURL], "网申入口"),
		AnnouncementLink: makeLink(r[scraper.FieldAnnounceURL], "查看公告"),
		Deadline:         p.norm.ParseDeadline(r[scraper.FieldDeadlineText]),
		LastUpdated:      now,
	}
}

// makeLink returns nil unless url carries a recognized scheme; an empty
// link object is never emitted.
func makeLink(url, text string) *Link {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil
	}
	return &Link{URL: url, Text: text}
}
