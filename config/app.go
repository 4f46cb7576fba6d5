package config

import (
	"os"
	"strconv"
	"time"
)

const defaultCacheTTLSeconds = 3600

// CacheTTL returns how long search and export cache entries live.
func CacheTTL() time.Duration {
	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultCacheTTLSeconds * time.Second
}
