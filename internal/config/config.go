package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ArticlesPublisher/internal/content/translit"
)

// DefaultTransliterator is the slug transliteration strategy used when none
// is configured.
const DefaultTransliterator = translit.NameTable

const (
	configPathEnv     = "ARTICLE_PUBLISHER_CONFIG"
	dotenvPathEnv     = "ARTICLE_PUBLISHER_DOTENV"
	wpURLEnv          = "WP_URL"
	wpUsernameEnv     = "WP_USERNAME"
	wpAppPasswordEnv  = "WP_APP_PASSWORD"
	wpPostStatusEnv   = "WP_POST_STATUS"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv    = "GEMINI_MODEL"
	pexelsAPIKeyEnv   = "PEXELS_API_KEY"
	googleAPIKeyEnv   = "GOOGLE_API_KEY"
	googleCSEIDEnv    = "GOOGLE_CSE_ID"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	WordPress     WordPressConfig     `yaml:"wordpress"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Pexels        PexelsConfig        `yaml:"pexels"`
	Google        GoogleConfig        `yaml:"google"`
	Notifications NotificationConfig  `yaml:"notifications"`
	Storage       StorageConfig       `yaml:"storage"`
	Content       ContentConfig       `yaml:"content"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Logging       LoggingConfig       `yaml:"logging"`
	Locations     map[string][]string `yaml:"locations"`
	// Categories maps a category name to its English stock-photo query.
	Categories map[string]string `yaml:"categories"`
}

// WordPressConfig describes the target site.
type WordPressConfig struct {
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	AppPassword string `yaml:"appPassword"`
	PostStatus  string `yaml:"postStatus"`
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// PexelsConfig configures stock image search.
type PexelsConfig struct {
	APIKey   string `yaml:"apiKey"`
	Endpoint string `yaml:"endpoint"`
}

// GoogleConfig configures Custom Search context lookups.
type GoogleConfig struct {
	APIKey   string `yaml:"apiKey"`
	CSEID    string `yaml:"cseId"`
	Endpoint string `yaml:"endpoint"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// StorageConfig lists the local files the bot writes.
type StorageConfig struct {
	HistoryPath   string `yaml:"historyPath"`
	LedgerPath    string `yaml:"ledgerPath"`
	TermCachePath string `yaml:"termCachePath"`
}

// ContentConfig bounds the generated identity fields.
type ContentConfig struct {
	Transliterator string `yaml:"transliterator"`
	TitleLength    int    `yaml:"titleLength"`
	MetaLength     int    `yaml:"metaLength"`
	SlugLength     int    `yaml:"slugLength"`
	MaxLinks       int    `yaml:"maxLinks"`
	RecentTitles   int    `yaml:"recentTitles"`
}

// SchedulerConfig paces the publishing loop.
type SchedulerConfig struct {
	MinBetween     time.Duration `yaml:"minBetween"`
	MaxBetween     time.Duration `yaml:"maxBetween"`
	Idle           time.Duration `yaml:"idle"`
	Error          time.Duration `yaml:"error"`
	PublishFailure time.Duration `yaml:"publishFailure"`
	Duplicate      time.Duration `yaml:"duplicate"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	loadDotenv(os.Getenv(dotenvPathEnv))

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func loadDotenv(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot load %s: %v", path, err)
	}
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &FileError{Path: path, Op: "read", Err: err}
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, &FileError{Path: path, Op: "parse", Err: err}
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{wpURLEnv, &c.WordPress.URL},
		{wpUsernameEnv, &c.WordPress.Username},
		{wpAppPasswordEnv, &c.WordPress.AppPassword},
		{wpPostStatusEnv, &c.WordPress.PostStatus},
		{geminiAPIKeyEnv, &c.Gemini.APIKey},
		{geminiModelEnv, &c.Gemini.Model},
		{pexelsAPIKeyEnv, &c.Pexels.APIKey},
		{googleAPIKeyEnv, &c.Google.APIKey},
		{googleCSEIDEnv, &c.Google.CSEID},
		{telegramTokenEnv, &c.Notifications.Telegram.BotToken},
		{telegramChatIDEnv, &c.Notifications.Telegram.ChatID},
		{logLevelEnv, &c.Logging.Level},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
}

func mergeString(base *string, override string) {
	if override != "" {
		*base = override
	}
}

func mergeInt(base *int, override int) {
	if override > 0 {
		*base = override
	}
}

func mergeDuration(base *time.Duration, override time.Duration) {
	if override > 0 {
		*base = override
	}
}

func mergeConfig(base, override Config) Config {
	mergeString(&base.WordPress.URL, override.WordPress.URL)
	mergeString(&base.WordPress.Username, override.WordPress.Username)
	mergeString(&base.WordPress.AppPassword, override.WordPress.AppPassword)
	mergeString(&base.WordPress.PostStatus, override.WordPress.PostStatus)

	mergeString(&base.Gemini.APIKey, override.Gemini.APIKey)
	mergeString(&base.Gemini.Model, override.Gemini.Model)

	mergeString(&base.Pexels.APIKey, override.Pexels.APIKey)
	mergeString(&base.Pexels.Endpoint, override.Pexels.Endpoint)

	mergeString(&base.Google.APIKey, override.Google.APIKey)
	mergeString(&base.Google.CSEID, override.Google.CSEID)
	mergeString(&base.Google.Endpoint, override.Google.Endpoint)

	mergeString(&base.Notifications.Telegram.BotToken, override.Notifications.Telegram.BotToken)
	mergeString(&base.Notifications.Telegram.ChatID, override.Notifications.Telegram.ChatID)

	mergeString(&base.Storage.HistoryPath, override.Storage.HistoryPath)
	mergeString(&base.Storage.LedgerPath, override.Storage.LedgerPath)
	mergeString(&base.Storage.TermCachePath, override.Storage.TermCachePath)

	mergeString(&base.Content.Transliterator, override.Content.Transliterator)
	mergeInt(&base.Content.TitleLength, override.Content.TitleLength)
	mergeInt(&base.Content.MetaLength, override.Content.MetaLength)
	mergeInt(&base.Content.SlugLength, override.Content.SlugLength)
	mergeInt(&base.Content.MaxLinks, override.Content.MaxLinks)
	mergeInt(&base.Content.RecentTitles, override.Content.RecentTitles)

	mergeDuration(&base.Scheduler.MinBetween, override.Scheduler.MinBetween)
	mergeDuration(&base.Scheduler.MaxBetween, override.Scheduler.MaxBetween)
	mergeDuration(&base.Scheduler.Idle, override.Scheduler.Idle)
	mergeDuration(&base.Scheduler.Error, override.Scheduler.Error)
	mergeDuration(&base.Scheduler.PublishFailure, override.Scheduler.PublishFailure)
	mergeDuration(&base.Scheduler.Duplicate, override.Scheduler.Duplicate)

	mergeString(&base.Logging.Level, override.Logging.Level)

	if len(override.Locations) > 0 {
		base.Locations = override.Locations
	}
	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}

	return base
}

func defaultConfig() Config {
	return Config{
		WordPress: WordPressConfig{PostStatus: "publish"},
		Gemini:    GeminiConfig{Model: "gemini-2.5-flash"},
		Storage: StorageConfig{
			HistoryPath:   "data/published_articles.json",
			LedgerPath:    "data/history.db",
			TermCachePath: "data/terms.db",
		},
		Content: ContentConfig{
			Transliterator: DefaultTransliterator,
			TitleLength:    60,
			MetaLength:     160,
			SlugLength:     75,
			MaxLinks:       2,
			RecentTitles:   50,
		},
		Scheduler: SchedulerConfig{
			MinBetween:     80 * time.Minute,
			MaxBetween:     100 * time.Minute,
			Idle:           time.Hour,
			Error:          10 * time.Minute,
			PublishFailure: 5 * time.Minute,
			Duplicate:      10 * time.Second,
		},
		Logging:    LoggingConfig{Level: "info"},
		Locations:  defaultLocations(),
		Categories: defaultCategories(),
	}
}

func defaultLocations() map[string][]string {
	return map[string][]string{
		"Польща":     {"Варшава", "Краків", "Вроцлав", "Гданськ", "Познань", "Лодзь"},
		"Чехія":      {"Прага", "Брно", "Острава"},
		"Німеччина":  {"Берлін", "Мюнхен", "Гамбург", "Франкфурт"},
		"Словаччина": {"Братислава", "Кошице"},
		"Литва":      {"Вільнюс", "Каунас"},
	}
}

func defaultCategories() map[string]string {
	return map[string]string{
		"Ремонт квартир":              "home renovation worker",
		"Краса та здоров'я":           "beauty salon spa",
		"Побутові послуги":            "plumber electrician",
		"Послуги перевезення":         "moving van delivery",
		"Ділові послуги":              "business meeting lawyer",
		"Туризм":                      "tourist travel",
		"Продаж нерухомості":          "house for sale keys",
		"Оренда нерухомості":          "apartment interior",
		"Легкові автомобілі":          "car dealership",
		"Мікроавтобуси":               "minivan cargo",
		"Авто на українських номерах": "car license plate ukraine",
		"Ремонт авто":                 "car mechanic auto repair",
	}
}
