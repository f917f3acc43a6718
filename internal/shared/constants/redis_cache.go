package constants

import (
	"time"
)

// Redis Cache Configuration
// Pattern: villa:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_CONTENT_PUBLIC = 10 * time.Minute // public landing page content
	TTL_LOCK_DEFAULT   = 10 * time.Second // availability lock lease
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "villa"
)

// ================== CONTENT MODULE ==================

const (
	CACHE_KEY_CONTENT_PUBLIC = CACHE_PREFIX + ":content:public:main"
	CACHE_PATTERN_CONTENT    = CACHE_PREFIX + ":content:*"
)

// ================== LOCKS ==================

const (
	LOCK_KEY_AVAILABILITY = CACHE_PREFIX + ":lock:availability"
)

// ================== RATE LIMITING ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit"
)

// ================== CACHE INVALIDATION PATTERNS ==================
//
// Content write (text, gallery, pricing, blocked dates)
//   -> delete CACHE_PATTERN_CONTENT
//
// Booking create / decision / delete
//   -> nothing cached; the unavailable-date set is always recomputed
