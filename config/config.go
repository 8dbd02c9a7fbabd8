package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Placeholder credentials shipped as defaults. Startup fails until they are
// replaced with real values.
const (
	placeholderBotToken = "7234182173"
	placeholderChatID   = "1402152106"
	defaultAffiliateTag = "welldecore-21"
)

// Category is one named listing page to poll. Order is significant: passes
// visit categories in the order they appear here.
type Category struct {
	Name string
	URL  string
}

// Config represents the application configuration
type Config struct {
	// Telegram configuration
	TelegramBotToken string
	TelegramChatID   string

	// Affiliate tagging
	AffiliateTag string

	// Price band for qualifying listings (inclusive)
	MinPrice float64
	MaxPrice float64

	// Mega-deal discount band in percent (inclusive, fixed)
	MegaMinDiscount float64
	MegaMaxDiscount float64

	// Polling configuration
	CheckInterval       time.Duration
	MaxItemsPerCategory int
	FetchBlockTime      time.Duration

	// Categories to poll, in order
	Categories []Category

	// HTTP request configuration
	UserAgent      string
	AcceptLanguage string
	BaseDomain     string

	// Redis alert mirror (disabled when RedisAddr is empty)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache fetch guard (disabled when MemcacheAddr is empty)
	MemcacheAddr string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	minPrice, _ := strconv.ParseFloat(getEnv("MIN_PRICE", "150"), 64)
	maxPrice, _ := strconv.ParseFloat(getEnv("MAX_PRICE", "1000"), 64)
	checkInterval, _ := strconv.Atoi(getEnv("CHECK_INTERVAL_MIN", "3"))
	maxItems, _ := strconv.Atoi(getEnv("MAX_ITEMS_PER_CATEGORY", "12"))
	blockSeconds, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))

	return &Config{
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", placeholderBotToken),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", placeholderChatID),
		AffiliateTag:     getEnv("AMAZON_AFFILIATE_TAG", defaultAffiliateTag),
		MinPrice:         minPrice,
		MaxPrice:         maxPrice,
		MegaMinDiscount:  80.0,
		MegaMaxDiscount:  95.0,

		CheckInterval:       time.Duration(checkInterval) * time.Minute,
		MaxItemsPerCategory: maxItems,
		FetchBlockTime:      time.Duration(blockSeconds) * time.Second,

		Categories: []Category{
			{Name: "mobiles", URL: getEnv("MOBILES_URL", "https://amzn.to/4fJChj3")},
			{Name: "accessories", URL: getEnv("ACCESSORIES_URL", "https://amzn.to/41eAsEU")},
			{Name: "home", URL: getEnv("HOME_URL", "https://amzn.to/45rKAwC")},
			{Name: "watches", URL: getEnv("WATCHES_URL", "https://amzn.to/4lEzWHD")},
		},

		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/117.0 Safari/537.36"),
		AcceptLanguage: getEnv("ACCEPT_LANGUAGE", "en-IN,en;q=0.9"),
		BaseDomain:     getEnv("BASE_DOMAIN", "https://www.amazon.in"),

		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "price_alerts"),
		RedisStreamMaxLength: streamMaxLen,

		MemcacheAddr: getEnv("MEMCACHE_ADDR", ""),
		Environment:  getEnv("TRACKER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for fatal problems. The process must not
// enter the polling loop when an error is returned.
func (c *Config) Validate() error {
	var problems []string

	if c.TelegramBotToken == "" || strings.Contains(c.TelegramBotToken, placeholderBotToken) {
		problems = append(problems, "TELEGRAM_BOT_TOKEN is missing or still the placeholder")
	}
	if c.TelegramChatID == "" || strings.Contains(c.TelegramChatID, placeholderChatID) {
		problems = append(problems, "TELEGRAM_CHAT_ID is missing or still the placeholder")
	}
	if len(c.Categories) == 0 {
		problems = append(problems, "no categories configured")
	}
	if c.MinPrice > c.MaxPrice {
		problems = append(problems, fmt.Sprintf("MIN_PRICE %.0f exceeds MAX_PRICE %.0f", c.MinPrice, c.MaxPrice))
	}
	if c.CheckInterval <= 0 {
		problems = append(problems, "CHECK_INTERVAL_MIN must be positive")
	}
	if c.MaxItemsPerCategory <= 0 {
		problems = append(problems, "MAX_ITEMS_PER_CATEGORY must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal configuration notes to surface at startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.AffiliateTag == "" || c.AffiliateTag == defaultAffiliateTag {
		warnings = append(warnings, "using the default affiliate tag; set AMAZON_AFFILIATE_TAG to your own")
	}
	return warnings
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
