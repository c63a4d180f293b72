package repository

import (
	"time"
)

// CacheRepository stores JSON-encoded values with expiry.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	// GetJSON returns apperrors.ErrNotFound on a cache miss.
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
