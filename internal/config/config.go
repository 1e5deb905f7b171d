// Package config loads the site configuration from config.yaml, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

// EnvPrefix marks variables that override file settings. Double
// underscores separate nested keys: HACKATHON_STORAGE__TYPE=sqlite.
const EnvPrefix = "HACKATHON_"

// DefaultPath is read when no config file is named. It may be absent.
const DefaultPath = "config.yaml"

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageSupabase = "supabase"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Site      SiteConfig      `koanf:"site"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type StorageConfig struct {
	Type     string         `koanf:"type"` // memory, sqlite, supabase
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Supabase SupabaseConfig `koanf:"supabase"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type SupabaseConfig struct {
	URL            string `koanf:"url"`
	AnonKey        string `koanf:"anon_key"`
	ServiceRoleKey string `koanf:"service_role_key"`
}

// Key returns the key the server writes with, preferring the service role.
func (c SupabaseConfig) Key() string {
	if c.ServiceRoleKey != "" {
		return c.ServiceRoleKey
	}
	return c.AnonKey
}

type SiteConfig struct {
	// Accent names the palette for pages and the terminal preview. Unknown
	// names fall back to purple with a warning when the site starts.
	Accent string `koanf:"accent"`
	// ContentPath overrides the embedded content with a YAML file.
	ContentPath string `koanf:"content_path"`
	// Watch reloads ContentPath when it changes.
	Watch bool `koanf:"watch"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Fallback names for hosted credentials, in lookup order.
var (
	supabaseURLVars  = []string{"PUBLIC_SUPABASE_URL", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"}
	supabaseAnonVars = []string{"PUBLIC_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"}
	supabaseRoleVars = []string{"SUPABASE_SERVICE_ROLE_KEY"}
)

// Load reads path (DefaultPath when empty), then the environment. A missing
// default file is fine; a missing named file is an error.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	k := koanf.New(".")

	optional := path == ""
	if optional {
		path = DefaultPath
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !optional || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// Environment variables override the file
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	defaults := map[string]any{
		"server.port":             8080,
		"server.request_timeout":  "30s",
		"server.shutdown_timeout": "30s",
		"storage.sqlite.path":     "./data/hackathon.db",
		"site.accent":             theme.Default.String(),
		"telemetry.service_name":  "hackathon-site",
		"log.level":               "info",
	}
	for key, v := range defaults {
		if !k.Exists(key) {
			k.Set(key, v)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	sb := &cfg.Storage.Supabase
	sb.URL = firstNonEmpty(substituteEnvVars(sb.URL), lookup(supabaseURLVars))
	sb.AnonKey = firstNonEmpty(substituteEnvVars(sb.AnonKey), lookup(supabaseAnonVars))
	sb.ServiceRoleKey = firstNonEmpty(substituteEnvVars(sb.ServiceRoleKey), lookup(supabaseRoleVars))
	cfg.Storage.SQLite.Path = substituteEnvVars(cfg.Storage.SQLite.Path)
	cfg.Site.ContentPath = substituteEnvVars(cfg.Site.ContentPath)

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = StorageMemory
		if sb.URL != "" && sb.Key() != "" {
			cfg.Storage.Type = StorageSupabase
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Storage.Type {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.SQLite.Path == "" {
			return errors.New("storage.sqlite.path is required for sqlite storage")
		}
	case StorageSupabase:
		if c.Storage.Supabase.URL == "" || c.Storage.Supabase.Key() == "" {
			return errors.New("supabase storage needs a url and a key")
		}
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}
	return nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func lookup(names []string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
