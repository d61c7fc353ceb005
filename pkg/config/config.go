// Package config loads tableplan settings from a TOML file.
//
// Every key is optional; missing keys keep the values from [Default]. The
// default location follows the XDG base directory convention:
//
//	$XDG_CONFIG_HOME/tableplan/config.toml
//	~/.config/tableplan/config.toml
//
// A minimal file pointing the editor at a layout server:
//
//	[store]
//	backend = "http"
//	url     = "https://api.example.com"
//	venue   = "the-blue-note"
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//	ttl        = "5m"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tableplan/pkg/errors"
)

const appName = "tableplan"

// Store backends.
const (
	BackendFile   = "file"
	BackendHTTP   = "http"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Cache backends.
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// Config is the full settings tree.
type Config struct {
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
	Editor Editor `toml:"editor"`
	Server Server `toml:"server"`
}

// Store selects and locates the layout store.
type Store struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`   // file backend; empty uses the XDG data dir
	URL     string `toml:"url"`   // http backend base URL
	Venue   string `toml:"venue"` // venue edited when none is given on the command line
	Mongo   Mongo  `toml:"mongo"`
}

// Mongo locates the MongoDB collection.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Cache configures the read-through layout cache.
type Cache struct {
	Backend   string        `toml:"backend"` // file, redis, memory or none
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
}

// Editor holds interactive editor settings.
type Editor struct {
	Grid         float64 `toml:"grid"`
	Snap         bool    `toml:"snap"`
	HistoryLimit int     `toml:"history_limit"` // 0 keeps every step
}

// Server configures `tableplan serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings: a local file store without a
// cache and a 10-unit snap grid that starts disabled.
func Default() Config {
	return Config{
		Store: Store{
			Backend: BackendFile,
			Mongo:   Mongo{Database: appName, Collection: "tablelayouts"},
		},
		Cache: Cache{
			Backend:   CacheNone,
			TTL:       5 * time.Minute,
			RedisAddr: "localhost:6379",
		},
		Editor: Editor{Grid: 10},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns the directory for locally stored layouts.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName, "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "layouts"), nil
}

// CacheDir returns the directory for the file cache.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of the defaults. An empty path means
// [Path]. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks that the selected backends have what they need.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMemory:
	case BackendHTTP:
		if err := errors.ValidateURL(c.Store.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "store.url")
		}
	case BackendMongo:
		if c.Store.Mongo.URI == "" || c.Store.Mongo.Database == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo requires uri and database")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	if c.Store.Venue != "" {
		if err := errors.ValidateVenueID(c.Store.Venue); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "store.venue")
		}
	}

	switch c.Cache.Backend {
	case CacheFile, CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis cache")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	if c.Editor.Grid < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor.grid must not be negative")
	}
	if c.Editor.HistoryLimit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor.history_limit must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
