package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get should miss before Set")
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	// Delete removes the entry
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("Get should miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key error: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheClassSharding(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	k := NewDefaultKeyer()
	keys := map[string]string{
		"graph":    k.GraphKey("abc123"),
		"query":    k.QueryKey("dsep", "abc123", QueryKeyOpts{X: "A", Y: "B"}),
		"artifact": k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "svg"}),
	}
	for class, key := range keys {
		if err := c.Set(ctx, key, []byte(class), time.Hour); err != nil {
			t.Fatalf("Set(%s) error: %v", class, err)
		}
		entries, err := os.ReadDir(filepath.Join(dir, class))
		if err != nil {
			t.Fatalf("class dir %s missing: %v", class, err)
		}
		if len(entries) != 1 {
			t.Errorf("class dir %s has %d entries, want 1", class, len(entries))
		}
		data, hit, err := c.Get(ctx, key)
		if err != nil || !hit {
			t.Fatalf("Get(%s) = hit %v, err %v", class, hit, err)
		}
		if string(data) != class {
			t.Errorf("Get(%s) = %q", class, data)
		}
	}
}

func TestFileCacheDefaultTTL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := NewDefaultKeyer().GraphKey("abc123")
	before := time.Now()
	if err := c.Set(ctx, key, []byte("doc"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	raw, err := os.ReadFile(c.(*FileCache).path(key))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if entry.ExpiresAt.Before(before.Add(TTLGraph)) {
		t.Errorf("ExpiresAt = %v, want at least %v out", entry.ExpiresAt, TTLGraph)
	}
}

func TestDefaultTTL(t *testing.T) {
	tests := []struct {
		key  string
		want time.Duration
	}{
		{"graph:abc", TTLGraph},
		{"query:dsep:abc", TTLQuery},
		{"artifact:abc", TTLArtifact},
		{"session:1:graph:abc", TTLQuery},
		{"nocolon", TTLQuery},
	}
	for _, tt := range tests {
		if got := DefaultTTL(tt.key); got != tt.want {
			t.Errorf("DefaultTTL(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// GraphKey
	graphKey := k.GraphKey("abc123")
	if graphKey != "graph:abc123" {
		t.Errorf("GraphKey unexpected: %s", graphKey)
	}

	// QueryKey should include options in hash
	qk1 := k.QueryKey("dsep", "abc123", QueryKeyOpts{X: "A", Y: "B", Observed: []string{"C"}})
	qk2 := k.QueryKey("dsep", "abc123", QueryKeyOpts{X: "A", Y: "B", Observed: []string{"D"}})
	if qk1 == qk2 {
		t.Error("Different QueryKeyOpts should produce different keys")
	}

	// Different operations over the same graph get distinct keys
	qk3 := k.QueryKey("separator", "abc123", QueryKeyOpts{X: "A", Y: "B", Observed: []string{"C"}})
	if qk1 == qk3 {
		t.Error("Different operations should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "session:123:")

	// All keys should be prefixed
	graphKey := scoped.GraphKey("abc123")
	if graphKey != "session:123:graph:abc123" {
		t.Errorf("ScopedKeyer GraphKey unexpected: %s", graphKey)
	}

	queryKey := scoped.QueryKey("dsep", "abc123", QueryKeyOpts{})
	if !strings.HasPrefix(queryKey, "session:123:") {
		t.Errorf("ScopedKeyer QueryKey should be prefixed: %s", queryKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.GraphKey("abc")
	if key != "prefix:graph:abc" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrBackend)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrBackend.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrBackend) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrBackend
	})
	if err != ErrBackend {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = retryWithBackoff(ctx, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrBackend)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrBackend)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

// flakyCache fails a fixed number of operations before recovering.
type flakyCache struct {
	inner    Cache
	failures int
	calls    int
}

func (c *flakyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, false, Retryable(ErrBackend)
	}
	return c.inner.Get(ctx, key)
}

func (c *flakyCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.calls++
	if c.calls <= c.failures {
		return Retryable(ErrBackend)
	}
	return c.inner.Set(ctx, key, data, ttl)
}

func (c *flakyCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *flakyCache) Close() error { return c.inner.Close() }

func TestWithRetryRecovers(t *testing.T) {
	ctx := context.Background()

	mem, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	flaky := &flakyCache{inner: mem, failures: 2}
	c := &retryCache{inner: flaky, delay: time.Millisecond}

	if err := c.Set(ctx, "query:dsep:abc", []byte("result"), time.Hour); err != nil {
		t.Fatalf("Set should recover after retries: %v", err)
	}
	if flaky.calls != 3 {
		t.Errorf("Set calls = %d, want 3", flaky.calls)
	}

	flaky.calls, flaky.failures = 0, 1
	data, hit, err := c.Get(ctx, "query:dsep:abc")
	if err != nil {
		t.Fatalf("Get should recover after retry: %v", err)
	}
	if !hit || string(data) != "result" {
		t.Errorf("Get = %q, hit %v", data, hit)
	}
	if flaky.calls != 2 {
		t.Errorf("Get calls = %d, want 2", flaky.calls)
	}
}

func TestWithRetryNonRetryableFailsFast(t *testing.T) {
	ctx := context.Background()
	c := &retryCache{inner: failAlways{}, delay: time.Millisecond}

	if _, _, err := c.Get(ctx, "key"); !errors.Is(err, ErrBackend) {
		t.Errorf("Get error = %v, want ErrBackend", err)
	}
	if err := c.Set(ctx, "key", nil, time.Hour); !errors.Is(err, ErrBackend) {
		t.Errorf("Set error = %v, want ErrBackend", err)
	}
}

// failAlways returns a non-retryable backend error on every operation.
type failAlways struct{}

func (failAlways) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, ErrBackend
}

func (failAlways) Set(context.Context, string, []byte, time.Duration) error {
	return ErrBackend
}

func (failAlways) Delete(context.Context, string) error { return ErrBackend }

func (failAlways) Close() error { return nil }
