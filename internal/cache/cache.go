// Package cache stores analysis results in Redis, keyed by the uploaded file
// and the parameters that shape the result.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jengzang/pace-analyzer/internal/analysis"
)

const keyPrefix = "pace-analyzer:analysis:"

// AnalysisCache stores analysis results by content key
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache connects to the Redis server at url. It returns a nil cache
// when url is empty; a nil *AnalysisCache is a valid, always-missing cache.
func NewAnalysisCache(ctx context.Context, url string, ttl time.Duration) (*AnalysisCache, error) {
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &AnalysisCache{client: client, ttl: ttl}, nil
}

// Key derives the cache key for a file and the parameters applied to it
func Key(data []byte, params analysis.Params) string {
	h := sha256.New()
	h.Write(data)

	var buf [8]byte
	writeFloat := func(f float64) {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	writeFloat(params.PaceLimit)
	writeFloat(float64(params.Athlete.Age))
	writeFloat(float64(params.Athlete.RestingHR))
	writeFloat(params.Athlete.WeightKg)
	writeFloat(float64(params.SampleInterval))
	h.Write([]byte(params.Athlete.Sex))
	if params.Location != nil {
		h.Write([]byte(params.Location.String()))
	}

	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key, or nil when absent
func (c *AnalysisCache) Get(ctx context.Context, key string) (*analysis.Result, error) {
	if c == nil {
		return nil, nil
	}

	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache key %q: %w", key, err)
	}

	var res analysis.Result
	if err := json.Unmarshal(value, &res); err != nil {
		return nil, fmt.Errorf("unmarshaling cached JSON for %q: %w", key, err)
	}
	return &res, nil
}

// Set stores res under key with the configured TTL
func (c *AnalysisCache) Set(ctx context.Context, key string, res *analysis.Result) error {
	if c == nil {
		return nil
	}

	value, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling JSON for cache key %q: %w", key, err)
	}
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// Close releases the Redis connection
func (c *AnalysisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
