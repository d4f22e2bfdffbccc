package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[log]
level = "debug"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Store.Backend != StoreMongo {
		t.Errorf("Store.Backend = %q, want mongo", cfg.Store.Backend)
	}
	// Untouched sections keep their defaults
	if cfg.Store.MongoDatabase != "caugraph" {
		t.Errorf("Store.MongoDatabase = %q, want caugraph", cfg.Store.MongoDatabase)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject invalid TOML")
	}
}

func TestOpenCacheBackends(t *testing.T) {
	ctx := context.Background()

	c, err := CacheConfig{Backend: CacheNone}.OpenCache(ctx)
	if err != nil {
		t.Fatalf("OpenCache(none) error: %v", err)
	}
	c.Close()

	c, err = CacheConfig{Backend: CacheFile, Dir: t.TempDir()}.OpenCache(ctx)
	if err != nil {
		t.Fatalf("OpenCache(file) error: %v", err)
	}
	c.Close()

	if _, err := (CacheConfig{Backend: "bogus"}).OpenCache(ctx); err == nil {
		t.Error("OpenCache(bogus) should error")
	}
}

func TestOpenStoreBackends(t *testing.T) {
	ctx := context.Background()

	st, err := StoreConfig{Backend: StoreMemory}.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore(memory) error: %v", err)
	}
	st.Close(ctx)

	st, err = StoreConfig{Backend: StoreFile, Dir: t.TempDir()}.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore(file) error: %v", err)
	}
	st.Close(ctx)

	if _, err := (StoreConfig{Backend: "bogus"}).OpenStore(ctx); err == nil {
		t.Error("OpenStore(bogus) should error")
	}
}
