// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Before either is consulted, an optional .env file in the working
// directory is loaded into the process environment, so CONFIG_PATH and
// every env:"..." override below can live there during development.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`

	// Database replaces what used to be a hard-coded connection string.
	// It is handed to the storage constructor, never read from a global.
	Database Database `yaml:"database"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:5001".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:5001"`
}

// Database holds connection settings. Nested under database: in YAML.
type Database struct {
	// Driver selects the backend: "sqlite3", "postgres" (lib/pq) or "pgx".
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite3"`

	// DSN is the driver-specific data source name: a file path for
	// sqlite3, a URL or key=value string for postgres/pgx. In-memory
	// SQLite DSNs (":memory:", mode=memory) are rejected, since no
	// connection outlives its operation.
	DSN string `yaml:"dsn" env:"DB_DSN" env-required:"true"`

	// MaxIdleConns is how many released connections database/sql keeps
	// open for reuse. 0 closes each connection when its operation ends.
	MaxIdleConns int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"0"`
}

// Load reads and validates the config file at path, applying environment
// overrides.
func Load(path string) (*Config, error) {
	// Verify the file exists before trying to read it, for a clearer
	// message than a cryptic "open: no such file" later.
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// and validates env-required:"true" constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, then loads it, exiting the process
// on any failure. If this function returns, the config is valid.
func MustLoad() *Config {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("cannot load .env: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
