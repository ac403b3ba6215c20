// GiveMeOC: WordPress-style listing. Pagination is plain ?paged=N, so
// walk URLs directly instead of fighting the theme's click handlers.

package givemeoc

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"go-campus-sync/internal/browser"
	"go-campus-sync/internal/config"
	"go-campus-sync/internal/scraper"
)

const (
	baseURL = "https://www.givemeoc.com"
	// Listing rows carry at least 10 columns; anything shorter is a
	// header or ad row
	minCells = 10
)

type GiveMeOCScraper struct {
	cfg      *config.Config
	debugger *browser.ScreenshotDebugger
}

func NewGiveMeOCScraper(cfg *config.Config) *GiveMeOCScraper {
	return &GiveMeOCScraper{
		cfg:      cfg,
		debugger: browser.NewScreenshotDebugger(cfg.LogsPath),
	}
}

func (s *GiveMeOCScraper) Name() string {
	return "GiveMeOC"
}

func (s *GiveMeOCScraper) Scrape(ctx context.Context, page playwright.Page) ([]scraper.RawRecord, error) {
	var records []scraper.RawRecord
	log.Println("📋 Connecting to GiveMeOC...")

	for pageNum := 1; pageNum <= s.cfg.GiveMeOCPages; pageNum++ {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		log.Printf("  📄 GiveMeOC page %d...", pageNum)

		url := fmt.Sprintf("%s/?paged=%d", baseURL, pageNum)
		if _, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(30000),
		}); err != nil {
			log.Printf("    ⚠️ Navigation failed: %v", err)
			s.debugger.CaptureAndLog(page, "givemeoc-goto", "🚨 GiveMeOC: navigation failed")
			break
		}

		if _, err := page.WaitForSelector("table", playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			log.Printf("    ⚠️ Listing table never appeared: %v", err)
			break
		}

		// the theme lazy-renders rows below the fold
		browser.HumanScroll(page)

		rows, err := page.Locator("tr").All()
		if err != nil {
			log.Printf("    ⚠️ Error reading rows: %v", err)
			break
		}

		pageCount := 0
		for i, row := range rows {
			// first row is the header
			if i == 0 {
				continue
			}
			cells, err := row.Locator("td").All()
			if err != nil || len(cells) < minCells {
				continue
			}

			company, _ := cells[1].TextContent()
			location, _ := cells[3].TextContent()
			targetClass, _ := cells[4].TextContent()
			position, _ := cells[6].TextContent()
			deadline, _ := cells[9].TextContent()

			link := ""
			if href, err := cells[6].Locator("a").First().GetAttribute("href", playwright.LocatorGetAttributeOptions{
				Timeout: playwright.Float(100),
			}); err == nil {
				link = strings.TrimSpace(href)
			}

			company = strings.TrimSpace(company)
			position = strings.TrimSpace(position)
			if company == "" || position == "" {
				continue
			}

			records = append(records, scraper.RawRecord{
				scraper.FieldSource:       s.Name(),
				scraper.FieldCompany:      company,
				scraper.FieldPosition:     position,
				scraper.FieldLocation:     strings.TrimSpace(location),
				scraper.FieldTargetClass:  strings.TrimSpace(targetClass),
				scraper.FieldDeadlineText: strings.TrimSpace(deadline),
				scraper.FieldApplyURL:     link,
			})
			pageCount++
		}

		if pageCount == 0 {
			log.Printf("  ⏹️ GiveMeOC exhausted after %d pages", pageNum)
			break
		}
		browser.RandomDelay(800, 1500)
	}

	log.Printf("✅ GiveMeOC finished. Collected %d records.", len(records))
	return records, nil
}
