// One full pipeline run: scrape every board sequentially over a shared
// page, shape the records, full-replace sync into the bitable.

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-campus-sync/internal/browser"
	"go-campus-sync/internal/config"
	"go-campus-sync/internal/feishu"
	"go-campus-sync/internal/pipeline"
	"go-campus-sync/internal/scraper"
	"go-campus-sync/internal/scraper/arkboard"
	"go-campus-sync/internal/scraper/cloudsheet"
	"go-campus-sync/internal/scraper/givemeoc"
	"go-campus-sync/internal/syncer"
	"go-campus-sync/internal/telegram"
)

const runTimeout = 15 * time.Minute

// Run executes one scrape-normalize-dedupe-sync cycle. Source and batch
// errors degrade to fewer records; only sink auth failure is returned.
func Run(parent context.Context, cfg *config.Config, bot *telegram.Bot) error {
	ctx, cancel := context.WithTimeout(parent, runTimeout)
	defer cancel()

	log.Println("🚀 Starting campus board sync run...")
	now := time.Now()

	//init playwright manager
	manager, err := browser.NewManager(!cfg.ShowBrowser)
	if err != nil {
		return fmt.Errorf("browser init failed: %w", err)
	}
	defer manager.Close()

	page, err := manager.NewPage()
	if err != nil {
		return fmt.Errorf("page init failed: %w", err)
	}
	log.Println("✅ Browser initialized successfully!")

	scrapers := []scraper.Scraper{
		arkboard.NewArkBoardScraper(cfg),
		givemeoc.NewGiveMeOCScraper(cfg),
		cloudsheet.NewCloudSheetScraper(cfg),
	}

	//run scrapers loop, one shared page, strictly sequential
	var rawRecords []scraper.RawRecord
	for _, s := range scrapers {
		log.Printf("▶️ Starting scraper: %s", s.Name())
		records, err := s.Scrape(ctx, page)
		if err != nil {
			log.Printf("❌ Error running scraper %s: %v", s.Name(), err)
		}
		log.Printf("✅ Scraper %s contributed %d records.", s.Name(), len(records))
		rawRecords = append(rawRecords, records...)
	}
	log.Printf("📦 Total raw records collected: %d", len(rawRecords))

	//shape the record set
	norm := pipeline.NewNormalizer(pipeline.DefaultRules(), pipeline.DefaultMarkers())
	pipe := pipeline.New(norm, time.Duration(cfg.GraceHours)*time.Hour)
	canonical := pipe.Run(rawRecords, now)
	log.Printf("📊 Canonical records ready for sync: %d", len(canonical))

	//auth against the sink; nothing can be written without a token
	client := feishu.NewClient(cfg.FeishuAppID, cfg.FeishuAppSecret, cfg.FeishuAppToken)
	if err := client.Authenticate(ctx); err != nil {
		bot.SendError(err)
		return fmt.Errorf("sink auth failed: %w", err)
	}

	tableID := cfg.FeishuTableID
	if tableID == "" {
		tableID, err = client.FirstTableID(ctx)
		if err != nil {
			bot.SendError(err)
			return fmt.Errorf("could not resolve target table: %w", err)
		}
		log.Printf("📑 Using first table in app: %s", tableID)
	}

	engine := syncer.NewEngine(client, tableID)
	result, err := engine.Sync(ctx, canonical)
	if err != nil {
		bot.SendError(err)
		return fmt.Errorf("sync failed: %w", err)
	}
	log.Printf("🏁 Sync finished: %s", result)

	summary := fmt.Sprintf("Campus sync: %d raw -> %d canonical records; %s",
		len(rawRecords), len(canonical), result)
	if err := bot.SendStatus(summary); err != nil {
		log.Printf("⚠️ Failed to send run report: %v", err)
	}

	saveRecords(cfg.LogsPath, canonical)
	return nil
}

// saveRecords keeps a local JSON snapshot of what was pushed, purely
// for debugging a bad run.
func saveRecords(logsPath string, records []pipeline.CanonicalRecord) {
	if len(records) == 0 {
		log.Println("ℹ️ No records to save.")
		return
	}

	if err := os.MkdirAll(logsPath, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	filename := fmt.Sprintf("campus-sync-%s.json", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(logsPath, filename)

	data, err := json.MarshalIndent(records, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal records to JSON: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write logs file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", filePath)
}
