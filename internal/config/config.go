// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Feishu bitable sink
	FeishuAppID     string `yaml:"feishu_app_id" env:"FEISHU_APP_ID"`
	FeishuAppSecret string `yaml:"feishu_app_secret" env:"FEISHU_APP_SECRET"`
	FeishuAppToken  string `yaml:"feishu_app_token" env:"FEISHU_APP_TOKEN"`
	//Optional: when empty the first table of the app is used
	FeishuTableID string `yaml:"feishu_table_id" env:"FEISHU_TABLE_ID"`

	//Optional run report
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Source limits
	ArkBoardPages     int `yaml:"arkboard_pages"`
	GiveMeOCPages     int `yaml:"givemeoc_pages"`
	CloudSheetScrolls int `yaml:"cloudsheet_scrolls"`

	//Pipeline
	GraceHours int `yaml:"grace_hours"`

	//Scheduler
	CronSpec string `yaml:"cron_spec"`

	//Browser: zero value means headless
	ShowBrowser bool `yaml:"show_browser"`

	//Paths
	LogsPath string `yaml:"logs_path"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if v := os.Getenv("FEISHU_APP_ID"); v != "" {
		cfg.FeishuAppID = v
	}
	if v := os.Getenv("FEISHU_APP_SECRET"); v != "" {
		cfg.FeishuAppSecret = v
	}
	if v := os.Getenv("FEISHU_APP_TOKEN"); v != "" {
		cfg.FeishuAppToken = v
	}
	if v := os.Getenv("FEISHU_TABLE_ID"); v != "" {
		cfg.FeishuTableID = v
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.ArkBoardPages == 0 {
		cfg.ArkBoardPages = 30
	}
	if cfg.GiveMeOCPages == 0 {
		cfg.GiveMeOCPages = 10
	}
	if cfg.CloudSheetScrolls == 0 {
		cfg.CloudSheetScrolls = 10
	}
	if cfg.GraceHours == 0 {
		cfg.GraceHours = 24
	}
	if cfg.CronSpec == "" {
		cfg.CronSpec = "0 8 * * *"
	}
	if cfg.LogsPath == "" {
		cfg.LogsPath = "logs"
	}

	//Validate required fields
	if cfg.FeishuAppID == "" {
		log.Fatal("FEISHU_APP_ID is required")
	}
	if cfg.FeishuAppSecret == "" {
		log.Fatal("FEISHU_APP_SECRET is required")
	}
	if cfg.FeishuAppToken == "" {
		log.Fatal("FEISHU_APP_TOKEN is required")
	}

	return cfg
}
