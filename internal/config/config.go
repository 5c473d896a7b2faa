// Package config resolves the settings shared by every ecoguia command.
//
// Values come from defaults, then an optional YAML or JSON file, then
// ECOGUIA_* environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/ecoguia/internal/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvBotFile       = "ECOGUIA_BOT_FILE"
	EnvReservasFile  = "ECOGUIA_RESERVAS_FILE"
	EnvAddr          = "ECOGUIA_ADDR"
	EnvStaticDir     = "ECOGUIA_STATIC_DIR"
	EnvStartNode     = "ECOGUIA_START_NODE"
	EnvLogLevel      = "ECOGUIA_LOG_LEVEL"
	EnvLogFormat     = "ECOGUIA_LOG_FORMAT"
	EnvRedisAddr     = "ECOGUIA_REDIS_ADDR"
	EnvRedisPassword = "ECOGUIA_REDIS_PASSWORD"
	EnvRedisDB       = "ECOGUIA_REDIS_DB"
	EnvCacheTTL      = "ECOGUIA_CACHE_TTL"
)

// Config holds the resolved settings.
type Config struct {
	BotFile      string `mapstructure:"bot_file" json:"bot_file"`
	ReservasFile string `mapstructure:"reservas_file" json:"reservas_file"`
	Addr         string `mapstructure:"addr" json:"addr"`
	StaticDir    string `mapstructure:"static_dir" json:"static_dir,omitempty"`
	StartNode    string `mapstructure:"start_node" json:"start_node,omitempty"`
	LogLevel     string `mapstructure:"log_level" json:"log_level"`
	LogFormat    string `mapstructure:"log_format" json:"log_format"`
	// LazyReferences defers target checks to each transition.
	LazyReferences bool  `mapstructure:"lazy_references" json:"lazy_references,omitempty"`
	Redis          Redis `mapstructure:"redis" json:"redis"`
}

// Redis configures the optional search cache. It is disabled when Addr is empty.
type Redis struct {
	Addr     string        `mapstructure:"addr" json:"addr,omitempty"`
	Password string        `mapstructure:"password" json:"-"`
	DB       int           `mapstructure:"db" json:"db"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		BotFile:      "bot.txt",
		ReservasFile: "reservas_unificadas.json",
		Addr:         ":8000",
		LogLevel:     "info",
		LogFormat:    logging.FormatText,
		Redis: Redis{
			TTL: 5 * time.Minute,
		},
	}
}

// Load resolves defaults, the file at path (skipped when empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvBotFile:       &c.BotFile,
		EnvReservasFile:  &c.ReservasFile,
		EnvAddr:          &c.Addr,
		EnvStaticDir:     &c.StaticDir,
		EnvStartNode:     &c.StartNode,
		EnvLogLevel:      &c.LogLevel,
		EnvLogFormat:     &c.LogFormat,
		EnvRedisAddr:     &c.Redis.Addr,
		EnvRedisPassword: &c.Redis.Password,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRedisDB, err)
		}
		c.Redis.DB = db
	}
	if v, ok := lookup(EnvCacheTTL); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCacheTTL, err)
		}
		c.Redis.TTL = ttl
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.BotFile == "" {
		return fmt.Errorf("bot file is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Redis.TTL)
	}
	return nil
}
