// Package cache stores rendered calculation responses keyed by their input parameters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/gcalc/internal/domain"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "gcalc:v1:"

// Repository is a byte-oriented cache. A miss is reported as found=false with a nil error;
// an error means the backend itself failed.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key derives the cache key for a parameter set from its canonical JSON encoding.
func Key(params domain.InputParameters) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameters: %w", err)
	}
	sum := sha256.Sum256(data)
	return KeyPrefix + hex.EncodeToString(sum[:]), nil
}

// New builds the repository selected by cfg.Backend.
func New(cfg domain.CacheConfig) (Repository, error) {
	ttl := cfg.TTL
	if ttl < 0 {
		return nil, fmt.Errorf("cache ttl cannot be negative, got %s", ttl)
	}

	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(ttl), nil
	case "redis":
		return NewRedisCache(cfg.RedisAddress, cfg.RedisDB, ttl), nil
	case "none":
		return NopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte) error         { return nil }
func (NopCache) Close() error                                      { return nil }
