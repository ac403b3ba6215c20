// CloudSheet: VIP listing kept in a cloud spreadsheet. Rows only exist
// in the DOM while visible, so the page is scrolled in steps and each
// visible batch harvested as tab-joined text.

package cloudsheet

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-campus-sync/internal/browser"
	"go-campus-sync/internal/config"
	"go-campus-sync/internal/scraper"
)

const sheetURL = "https://docs.qq.com/sheet/DS29Pb3pLRExVa0xp?tab=BB08J2"

// harvestJS collects the text of rows currently rendered. The sheet
// re-renders rows on scroll, so the same row can show up twice; the
// pipeline dedupe absorbs that.
const harvestJS = `() => {
	const data = [];
	document.querySelectorAll('tr, .cell-container').forEach(el => {
		const text = el.innerText;
		if (text && text.trim()) data.push(text.replace(/\n/g, '\t'));
	});
	return data;
}`

var dateLikeRegex = regexp.MustCompile(`\d{1,4}\s*[./\-年月]\s*\d{1,2}`)

type CloudSheetScraper struct {
	cfg      *config.Config
	debugger *browser.ScreenshotDebugger
}

func NewCloudSheetScraper(cfg *config.Config) *CloudSheetScraper {
	return &CloudSheetScraper{
		cfg:      cfg,
		debugger: browser.NewScreenshotDebugger(cfg.LogsPath),
	}
}

func (s *CloudSheetScraper) Name() string {
	return "CloudSheet"
}

func (s *CloudSheetScraper) Scrape(ctx context.Context, page playwright.Page) ([]scraper.RawRecord, error) {
	var records []scraper.RawRecord
	log.Println("📋 Connecting to CloudSheet (VIP listing)...")

	if _, err := page.Goto(sheetURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(60000),
	}); err != nil {
		s.debugger.CaptureAndLog(page, "cloudsheet-goto", "🚨 CloudSheet: navigation failed")
		return nil, err
	}
	// the sheet renderer needs a beat after networkidle
	time.Sleep(5 * time.Second)

	for i := 0; i < s.cfg.CloudSheetScrolls; i++ {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		log.Printf("  🖱️ Scrolling CloudSheet (%d/%d)...", i+1, s.cfg.CloudSheetScrolls)

		raw, err := page.Evaluate(harvestJS)
		if err != nil {
			log.Printf("    ⚠️ Row harvest failed: %v", err)
			break
		}

		if lines, ok := raw.([]any); ok {
			for _, line := range lines {
				text, ok := line.(string)
				if !ok {
					continue
				}
				if rec := ParseRow(text, s.Name()); rec != nil {
					records = append(records, rec)
				}
			}
		}

		if err := browser.WheelScroll(page, 1500); err != nil {
			log.Printf("    ⚠️ Scroll failed: %v", err)
			break
		}
		time.Sleep(2 * time.Second)
	}

	log.Printf("✅ CloudSheet finished. Collected %d records.", len(records))
	return records, nil
}

// ParseRow turns one tab-joined sheet row into a raw record, nil when
// the row is not a posting (toolbars, headers, legends).
func ParseRow(text, source string) scraper.RawRecord {
	cells := strings.Split(text, "\t")
	fields := make([]string, 0, len(cells))
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			fields = append(fields, c)
		}
	}
	if len(fields) < 2 {
		return nil
	}

	company, position := fields[0], fields[1]
	if company == "" || position == "" || company == "公司" {
		return nil
	}

	rec := scraper.RawRecord{
		scraper.FieldSource:   source,
		scraper.FieldCompany:  company,
		scraper.FieldPosition: position,
	}

	// remaining cells are free-form; pick out what is recognizable
	for _, f := range fields[2:] {
		switch {
		case dateLikeRegex.MatchString(f) && rec[scraper.FieldDeadlineText] == "":
			rec[scraper.FieldDeadlineText] = f
		case strings.HasPrefix(f, "http") && rec[scraper.FieldApplyURL] == "":
			rec[scraper.FieldApplyURL] = f
		case strings.Contains(f, "届") && rec[scraper.FieldTargetClass] == "":
			rec[scraper.FieldTargetClass] = f
		}
	}
	return rec
}
