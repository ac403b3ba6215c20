package pipeline

import "time"

// Link is a (url, display text) pair for a bitable link cell.
type Link struct {
	URL  string
	Text string
}

// CanonicalRecord is a normalized, deduplicated posting ready for sync.
// Company and Position are never empty; everything else is best effort.
type CanonicalRecord struct {
	Company     string
	Position    string
	CompanyType string
	Industry    string
	Location    string
	TargetClass string

	ApplyLink        *Link
	AnnouncementLink *Link

	// Deadline is local midnight of the resolved date, nil when the
	// posting has no known deadline. Nil never expires.
	Deadline *time.Time

	// LastUpdated is the run snapshot time, identical for every record
	// produced by one run.
	LastUpdated time.Time
}
