// Package cli implements the tableplan command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Settings
// come from a TOML config file (see package config) and can be overridden
// per invocation with flags.
//
// # Commands
//
//   - edit: interactive terminal editor for one venue's layout
//   - show: print a venue's tables
//   - export: write a layout as SVG, PNG, DOT or JSON
//   - import: replace a venue's layout from a JSON document
//   - serve: run the layout HTTP API over the configured store
//   - cache, config, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces editor commits, store calls, cache lookups and HTTP requests.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/cache"
	"github.com/matzehuels/tableplan/pkg/config"
	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/store"
	"github.com/matzehuels/tableplan/pkg/store/mongostore"
	"github.com/matzehuels/tableplan/pkg/store/remote"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tableplan"

	// connectTimeout bounds dialing a remote store or cache.
	connectTimeout = 10 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Backend Factory
// =============================================================================

// backend is an opened layout store plus whatever must be released with it.
type backend struct {
	store.Store
	closers []func() error
}

// Close releases the store's connections.
func (b *backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openBackend opens the configured store, wrapped in the configured cache.
func (c *CLI) openBackend(ctx context.Context) (*backend, error) {
	cfg := c.Config
	b := &backend{}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		b.Store = store.NewMemoryStore()
	case config.BackendFile:
		dir := cfg.Store.Dir
		if dir == "" {
			d, err := config.DataDir()
			if err != nil {
				return nil, fmt.Errorf("get data dir: %w", err)
			}
			dir = d
		}
		fs, err := store.NewFileStore(dir, c.Logger)
		if err != nil {
			return nil, err
		}
		b.Store = fs
	case config.BackendHTTP:
		client, err := remote.New(cfg.Store.URL, remote.WithLogger(c.Logger))
		if err != nil {
			return nil, err
		}
		b.Store = client
	case config.BackendMongo:
		dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		ms, err := mongostore.Open(dialCtx, mongostore.Config{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
		}, c.Logger)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
		}
		b.Store = ms
		b.closers = append(b.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			return ms.Close(closeCtx)
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Store.Backend)
	}

	lc, err := c.openCache(ctx)
	if err != nil {
		// A broken cache must never block editing.
		c.Logger.Warn("layout cache disabled", "err", err)
		lc = cache.NewNullCache()
	}
	if _, isNull := lc.(cache.NullCache); !isNull {
		b.Store = store.NewCached(b.Store, lc, cache.NewScopedKeyer(nil, c.cacheScope()), cfg.Cache.TTL, c.Logger)
		b.closers = append(b.closers, lc.Close)
	}
	c.Logger.Debug("store opened", "backend", cfg.Store.Backend, "cache", cfg.Cache.Backend)
	return b, nil
}

// openCache opens the configured layout cache. --no-cache wins over config.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone, "":
		return cache.NewNullCache(), nil
	case config.CacheFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := config.CacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case config.CacheMemory:
		return cache.NewMemoryCache(), nil
	case config.CacheRedis:
		dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return cache.NewRedisCache(dialCtx, cache.RedisOptions{
			Addr:        cfg.RedisAddr,
			DB:          cfg.RedisDB,
			DialTimeout: connectTimeout,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
}

// cacheScope prefixes cache keys with the store they were read from, so
// switching backends never serves another store's layout.
func (c *CLI) cacheScope() string {
	s := c.Config.Store
	where := ""
	switch s.Backend {
	case config.BackendFile:
		where = s.Dir
	case config.BackendHTTP:
		where = s.URL
	case config.BackendMongo:
		where = s.Mongo.URI + "/" + s.Mongo.Database + "/" + s.Mongo.Collection
	}
	return s.Backend + ":" + cache.Hash([]byte(where))[:12] + ":"
}

// venueArg picks the venue from the positional args or the configured
// default. Venue ids are case-insensitive.
func (c *CLI) venueArg(args []string) (string, error) {
	venue := c.Config.Store.Venue
	if len(args) > 0 {
		venue = args[0]
	}
	if venue == "" {
		return "", errors.New(errors.ErrCodeInvalidVenue, "no venue given and store.venue is not configured")
	}
	venue = strings.ToLower(venue)
	if err := errors.ValidateVenueID(venue); err != nil {
		return "", err
	}
	return venue, nil
}
