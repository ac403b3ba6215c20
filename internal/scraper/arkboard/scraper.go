// ArkBoard: ag-grid campus board. Rows render into .ag-row cells; the
// next-page button must be clicked from JS because the overlay eats
// normal clicks.

package arkboard

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-campus-sync/internal/browser"
	"go-campus-sync/internal/config"
	"go-campus-sync/internal/scraper"
)

const (
	baseURL   = "https://www.qiuzhifangzhou.com"
	campusURL = baseURL + "/campus"
	// Cells per row below this count are skeleton rows still loading
	minCells = 8
)

// clickNext reports whether the grid had a clickable next button and
// clicked it. DOM-level click bypasses the ag-grid overlay.
const clickNextJS = `() => {
	const btn = document.querySelector('[ref="btNext"]');
	if (btn && !btn.disabled && !btn.classList.contains('ag-disabled')) {
		btn.click();
		return true;
	}
	return false;
}`

type ArkBoardScraper struct {
	cfg      *config.Config
	debugger *browser.ScreenshotDebugger
}

func NewArkBoardScraper(cfg *config.Config) *ArkBoardScraper {
	return &ArkBoardScraper{
		cfg:      cfg,
		debugger: browser.NewScreenshotDebugger(cfg.LogsPath),
	}
}

func (s *ArkBoardScraper) Name() string {
	return "ArkBoard"
}

func (s *ArkBoardScraper) Scrape(ctx context.Context, page playwright.Page) ([]scraper.RawRecord, error) {
	var records []scraper.RawRecord
	log.Println("📋 Connecting to ArkBoard...")

	if _, err := page.Goto(campusURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(60000),
	}); err != nil {
		s.debugger.CaptureAndLog(page, "arkboard-goto", "🚨 ArkBoard: navigation failed")
		return nil, err
	}

	for pageNum := 1; pageNum <= s.cfg.ArkBoardPages; pageNum++ {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		log.Printf("  📄 ArkBoard page %d...", pageNum)

		if _, err := page.WaitForSelector(".ag-row", playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			log.Printf("    ⚠️ No rows rendered on page %d: %v", pageNum, err)
			s.debugger.CaptureAndLog(page, "arkboard-empty", "🚨 ArkBoard: grid rows never appeared")
			break
		}

		rows, err := page.Locator(".ag-row").All()
		if err != nil {
			log.Printf("    ⚠️ Error reading grid rows: %v", err)
			break
		}

		for _, row := range rows {
			cells, err := row.Locator(".ag-cell").All()
			if err != nil || len(cells) < minCells {
				continue
			}

			company, _ := cells[1].TextContent()
			position, _ := cells[2].TextContent()
			location, _ := cells[4].TextContent()
			targetClass, _ := cells[5].TextContent()
			deadline, _ := cells[7].TextContent()

			link := ""
			if href, err := cells[2].Locator("a").First().GetAttribute("href", playwright.LocatorGetAttributeOptions{
				Timeout: playwright.Float(100),
			}); err == nil {
				link = absURL(href)
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
		}

		canNext, err := page.Evaluate(clickNextJS)
		if err != nil {
			log.Printf("    ⚠️ Pagination click failed: %v", err)
			break
		}
		if clicked, ok := canNext.(bool); !ok || !clicked {
			log.Printf("  ⏹️ ArkBoard exhausted after %d pages", pageNum)
			break
		}
		time.Sleep(2 * time.Second)
	}

	log.Printf("✅ ArkBoard finished. Collected %d records.", len(records))
	return records, nil
}

// absURL resolves board-relative hrefs against the site root.
func absURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return baseURL + href
}
