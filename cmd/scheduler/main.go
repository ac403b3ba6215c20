// Daily trigger. SkipIfStillRunning guards the sink: two overlapping
// runs would race the full-replace delete/insert window.

package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"go-campus-sync/internal/app"
	"go-campus-sync/internal/config"
	"go-campus-sync/internal/telegram"
)

func main() {
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Schedule: %q", cfg.CronSpec)

	var bot *telegram.Bot
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		var err error
		bot, err = telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot, continuing without: %v", err)
		}
	}

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := c.AddFunc(cfg.CronSpec, func() {
		if err := app.Run(context.Background(), cfg, bot); err != nil {
			log.Printf("❌ Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("❌ Invalid cron spec %q: %v", cfg.CronSpec, err)
	}

	log.Println("⏰ Scheduler started.")
	c.Run()
}
