package config

import (
	"fmt"
	"os"
)

const (
	DefaultCatalogPath = "data/components.yaml"
	DefaultItemsPath   = "data/items.json"
	DefaultSaveDir     = ".saves"
	DefaultModel       = "gemini-2.5-flash"
	DefaultProfile     = "current"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string
	Model        string
	CatalogPath  string
	ItemsPath    string // empty disables unknown-item warnings
	SaveDir      string
	Profile      string // wallet profile under SaveDir
}

// LoadConfig loads the configuration from environment variables.
// The API key may be empty; only finalizing needs it (see RequireAPIKey).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Model:        getEnv("SPELLFORGE_MODEL", DefaultModel),
		CatalogPath:  getEnv("SPELLFORGE_CATALOG", DefaultCatalogPath),
		ItemsPath:    getEnv("SPELLFORGE_ITEMS", DefaultItemsPath),
		SaveDir:      getEnv("SPELLFORGE_SAVE_DIR", DefaultSaveDir),
		Profile:      getEnv("SPELLFORGE_PROFILE", DefaultProfile),
	}
	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("SPELLFORGE_CATALOG must not be empty")
	}
	return cfg, nil
}

// RequireAPIKey reports an error when no Gemini API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
