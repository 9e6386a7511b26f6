package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values.
// Pattern: superpack:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_SHORT = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for package details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for search results
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for quote listings
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for price resolutions
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "superpack"
)

// ================== PACKAGES MODULE ==================

// Package Cache Keys
const (
	CACHE_KEY_PACKAGES_LIST  = CACHE_PREFIX + ":packages:list"         // + :page:X:limit:Y:status:Z
	CACHE_KEY_PACKAGE_DETAIL = CACHE_PREFIX + ":packages:detail:uuid:" // + package-id
)

// Package Cache TTLs
const (
	TTL_PACKAGE_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_PACKAGE_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== CATALOG MODULE ==================

// Event Catalogue Cache Keys
const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"         // + :page:X:limit:Y
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

// Event Catalogue Cache TTLs
const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== AUTH MODULE ==================

// Auth Cache Keys
const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

// Auth Cache TTLs
const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PACKAGES_ALL = CACHE_PREFIX + ":packages:*"
	PATTERN_INVALIDATE_EVENTS_ALL   = CACHE_PREFIX + ":events:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildPackageListKey(page, limit int, status string) string {
	if status != "" {
		return CACHE_KEY_PACKAGES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit) + ":status:" + status
	}
	return CACHE_KEY_PACKAGES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildPackageDetailKey(packageID string) string {
	return CACHE_KEY_PACKAGE_DETAIL + packageID
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildUserProfileKey(userID string) string {
	return CACHE_KEY_USER_PROFILE + userID
}
