package main

import (
	"context"
	"log"

	"go-campus-sync/internal/app"
	"go-campus-sync/internal/config"
	"go-campus-sync/internal/telegram"
)

func main() {
	//load config
	cfg := config.Load()
	log.Println("🔧 Config loaded.")

	//init telegram bot (optional run report)
	var bot *telegram.Bot
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		var err error
		bot, err = telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot, continuing without: %v", err)
		} else {
			log.Println("🤖 Telegram Bot initialized.")
		}
	}

	if err := app.Run(context.Background(), cfg, bot); err != nil {
		log.Fatalf("❌ Run failed: %v", err)
	}
	log.Println("🏁 Execution finished.")
}
