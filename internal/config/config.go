package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir string `json:"data_dir"`

	// Market data providers
	FMPAPIKey       string        `json:"fmp_api_key"`
	ProviderTimeout time.Duration `json:"provider_timeout"`
	QuoteCacheTTL   time.Duration `json:"quote_cache_ttl"`
	QuoteCacheSize  int           `json:"quote_cache_size"`
	CacheEnabled    bool          `json:"cache_enabled"`

	// AI generation backend
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url"`
	ChatModel     string `json:"chat_model"`

	// Session store: "memory" or "sqlite"
	StoreDriver string `json:"store_driver"`
	DBPath      string `json:"db_path"`

	// HTTP server
	ListenAddr string `json:"listen_addr"`

	Debug bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		DataDir: filepath.Join(currentDir, "data"),

		ProviderTimeout: 10 * time.Second,
		QuoteCacheTTL:   time.Minute,
		QuoteCacheSize:  256,
		CacheEnabled:    true,

		OpenAIBaseURL: "https://api.openai.com/v1",
		ChatModel:     "gpt-4o-mini",

		StoreDriver: "sqlite",
		ListenAddr:  ":8090",

		Debug: false,
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, "tradetalk.db")

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
		c.DBPath = filepath.Join(val, "tradetalk.db")
	}
	if val := os.Getenv("FMP_API_KEY"); val != "" {
		c.FMPAPIKey = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		c.OpenAIBaseURL = val
	}
	if val := os.Getenv("CHAT_MODEL"); val != "" {
		c.ChatModel = val
	}
	if val := os.Getenv("STORE_DRIVER"); val != "" {
		c.StoreDriver = val
	}
	if val := os.Getenv("DB_PATH"); val != "" {
		c.DBPath = val
	}
	if val := os.Getenv("LISTEN_ADDR"); val != "" {
		c.ListenAddr = val
	}
	if val := os.Getenv("PROVIDER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.ProviderTimeout = d
		}
	}
	if val := os.Getenv("QUOTE_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.QuoteCacheTTL = d
		}
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}
	if val := os.Getenv("DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Debug = debug
		}
	}
}

func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.DataDir, 0755)
}
