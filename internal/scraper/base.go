// Define an interface for all board scrapers
// Ensure consistency

package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

// RawRecord is a loosely-typed posting as it comes off a board. Any field
// may be missing or malformed; the pipeline is responsible for cleanup.
type RawRecord map[string]string

// Field keys shared by every source. A source fills what it can see.
const (
	FieldCompany      = "company_name"
	FieldPosition     = "position"
	FieldLocation     = "location"
	FieldTargetClass  = "target_class"
	FieldDeadlineText = "deadline_text"
	FieldApplyURL     = "apply_url"
	FieldAnnounceURL  = "announcement_url"
	FieldCompanyType  = "company_type"
	FieldIndustry     = "industry"
	FieldSource       = "source"
)

// Scraper defines the interface that all board scrapers must implement
type Scraper interface {
	// Scrape drives the board to exhaustion (or its page cap) and returns
	// every posting it could read. Partial results with a nil error are
	// expected when a board misbehaves mid-run.
	Scrape(ctx context.Context, page playwright.Page) ([]RawRecord, error)

	// Name is the board name (ArkBoard, GiveMeOC, ...)
	Name() string
}
