// Package config loads server configuration from an optional TOML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/docuchat-labs/docuchat/internal/adapters/driven/storage/mongo"
)

// Storage backend names.
const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Gemini  GeminiConfig  `toml:"gemini"`
	Verbose bool          `toml:"verbose"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

// StorageConfig selects and configures the chunk store backend.
type StorageConfig struct {
	Backend string       `toml:"backend"`
	Mongo   MongoConfig  `toml:"mongo"`
	SQLite  SQLiteConfig `toml:"sqlite"`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// SQLiteConfig holds SQLite settings.
type SQLiteConfig struct {
	DataDir string `toml:"data_dir"`
}

// GeminiConfig holds Gemini API settings shared by the embedding and
// generation adapters.
type GeminiConfig struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	EmbeddingModel  string `toml:"embedding_model"`
	GenerationModel string `toml:"generation_model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Storage: StorageConfig{
			Backend: BackendMongo,
			Mongo: MongoConfig{
				URI:        mongo.DefaultURI,
				Database:   mongo.DefaultDatabase,
				Collection: mongo.DefaultCollection,
			},
		},
	}
}

// Load builds the configuration from defaults, then the TOML file at
// path (if it exists), then environment variables. Later sources win.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing config file is fine, defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides config fields from the environment.
func applyEnv(cfg *Config) {
	setString(&cfg.Storage.Mongo.URI, "MONGO_URI")
	setString(&cfg.Storage.Mongo.Database, "DB_NAME")
	setString(&cfg.Storage.Mongo.Collection, "COLLECTION_NAME")
	setString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Gemini.BaseURL, "GEMINI_BASE_URL")
	setString(&cfg.Storage.Backend, "DOCUCHAT_STORAGE")
	setString(&cfg.Storage.SQLite.DataDir, "DOCUCHAT_DATA_DIR")
	setString(&cfg.Server.Addr, "DOCUCHAT_ADDR")

	if v, ok := os.LookupEnv("DOCUCHAT_VERBOSE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
}

// setString assigns the env value to dst when the variable is set and
// non-empty.
func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// validate rejects configurations the server cannot start with.
func validate(cfg Config) error {
	switch cfg.Storage.Backend {
	case BackendMongo, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return nil
}
