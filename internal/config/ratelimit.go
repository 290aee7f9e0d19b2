package config

import (
    "time"
)

// RateLimitConfig controls the Redis token bucket that shields the booking
// endpoints.  Capacity is the burst size, RefillTokens are added every
// RefillInterval, and TTL bounds how long idle buckets live in Redis.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables,
// falling back to defaults tuned for a small public site.  Invalid values
// are clamped so the limiter never divides by zero or expires buckets
// before they refill.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoi(getenv("RATE_LIMIT_CAPACITY", "60")),
        RefillTokens:   atoi(getenv("RATE_LIMIT_REFILL_TOKENS", "1")),
        RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
        TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "qa:rl"),
        Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
        cfg.TTL = minTTL
    }
    return cfg
}
