package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDialect    = "sqlite"
	defaultSQLitePath = "quill.db"
	defaultUploadDir  = "uploads"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// QUILL_* environment variables taking precedence.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	JWTSecret      string         `yaml:"jwt_secret"`
	RedisURL       string         `yaml:"redis_url"` // optional; enables rate limiting
	AllowedOrigins []string       `yaml:"allowed_origins"`
	UploadDir      string         `yaml:"upload_dir"`
	Database       DatabaseConfig `yaml:"database"`
}

// DatabaseConfig selects the storage engine. Dialect "mysql" uses DSN;
// dialect "sqlite" uses Path (":memory:" works for throwaway runs).
type DatabaseConfig struct {
	Dialect string `yaml:"dialect"`
	DSN     string `yaml:"dsn"`
	Path    string `yaml:"path"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file (missing file means all defaults) and
// applies environment overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Dialect: defaultDialect,
			Path:    defaultSQLitePath,
		},
		UploadDir: defaultUploadDir,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("QUILL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("QUILL_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("QUILL_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("QUILL_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("QUILL_DB_DIALECT"); v != "" {
		cfg.Database.Dialect = v
	}
	if v := os.Getenv("QUILL_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("QUILL_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("QUILL_UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
}

func (c *AppConfig) validate() error {
	switch c.Database.Dialect {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite dialect")
		}
	case "mysql":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the mysql dialect")
		}
	default:
		return fmt.Errorf("unsupported database dialect %q", c.Database.Dialect)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
