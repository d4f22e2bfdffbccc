// Package config loads application configuration from TOML files.
//
// Configuration selects the cache and store backends and sets server and
// logging defaults. A missing config file is not an error: defaults apply.
//
// Example config.toml:
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "caugraph"
//
//	[server]
//	addr = ":8080"
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/caugraph/caugraph/pkg/cache"
	"github.com/caugraph/caugraph/pkg/store"
)

// Backend names accepted in the cache and store sections.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the application configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	// Backend is one of none, file, redis.
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	// Empty means ~/.cache/caugraph.
	Dir string `toml:"dir"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// StoreConfig selects and parameterizes the graph store backend.
type StoreConfig struct {
	// Backend is one of memory, file, mongo.
	Backend string `toml:"backend"`

	// Dir is the record directory for the file backend.
	// Empty means ~/.config/caugraph/graphs.
	Dir string `toml:"dir"`

	// MongoURI is the connection URI for the mongo backend.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the database name for the mongo backend.
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, for example ":8080".
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Cache:  CacheConfig{Backend: CacheFile},
		Store:  StoreConfig{Backend: StoreFile, MongoDatabase: "caugraph"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/caugraph/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "caugraph", "config.toml"), nil
}

// Load reads configuration from the given path, layered over defaults.
// If path is empty, the standard location is used. A missing file returns
// the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// OpenCache constructs the configured cache backend.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case "", CacheNone:
		return cache.NewNullCache(), nil
	case CacheFile:
		dir := c.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("get home dir: %w", err)
			}
			dir = filepath.Join(home, ".cache", "caugraph")
		}
		return cache.NewFileCache(dir)
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.RedisURL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

// OpenStore constructs the configured store backend, instrumented with the
// store observability hooks.
func (c StoreConfig) OpenStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	switch c.Backend {
	case "", StoreMemory:
		st = store.NewMemoryStore()
	case StoreFile:
		fs, err := store.NewFileStore(c.Dir)
		if err != nil {
			return nil, err
		}
		st = fs
	case StoreMongo:
		db := c.MongoDatabase
		if db == "" {
			db = "caugraph"
		}
		ms, err := store.NewMongoStore(ctx, c.MongoURI, db)
		if err != nil {
			return nil, err
		}
		st = ms
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Backend)
	}
	return store.Instrument(st), nil
}
