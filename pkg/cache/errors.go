package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend is returned for storage backend failures (timeouts, connection
// errors). It never indicates a cache miss.
var ErrBackend = errors.New("cache backend error")

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff retries fn up to 3 times with exponential backoff
// starting at one second. Only errors wrapped with Retryable will
// trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return retryWithBackoff(ctx, time.Second, fn)
}

func retryWithBackoff(ctx context.Context, delay time.Duration, fn func() error) error {
	const attempts = 3
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// retryCache wraps a backend whose errors may be marked retryable, such
// as RedisCache, and retries failed operations with backoff.
type retryCache struct {
	inner Cache
	delay time.Duration
}

// WithRetry wraps a cache so retryable backend errors are retried with
// exponential backoff before being reported to the caller.
func WithRetry(c Cache) Cache {
	return &retryCache{inner: c, delay: time.Second}
}

// Get retries retryable backend failures. A miss is not an error and is
// returned as-is.
func (c *retryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := retryWithBackoff(ctx, c.delay, func() error {
		var err error
		data, hit, err = c.inner.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set retries retryable write failures.
func (c *retryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return retryWithBackoff(ctx, c.delay, func() error {
		return c.inner.Set(ctx, key, data, ttl)
	})
}

// Delete retries retryable delete failures.
func (c *retryCache) Delete(ctx context.Context, key string) error {
	return retryWithBackoff(ctx, c.delay, func() error {
		return c.inner.Delete(ctx, key)
	})
}

// Close releases the wrapped backend.
func (c *retryCache) Close() error {
	return c.inner.Close()
}

// Ensure retryCache implements Cache.
var _ Cache = (*retryCache)(nil)
