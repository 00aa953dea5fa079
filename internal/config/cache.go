package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache on the public
// lookup endpoints.  When Enabled is false or no Redis client is
// available, caching is disabled entirely.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // HTTP methods worth caching
	TTL          time.Duration
	Prefix       string // Redis key namespace
	MaxBodyBytes int    // responses larger than this are never cached
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Seat lookups go stale the moment a new run replaces the allocation
// set, so entries stay short-lived by default.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          parseDur(getenv("CACHE_TTL", "15s")),
		Prefix:       getenv("CACHE_PREFIX", "seating"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
