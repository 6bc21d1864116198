// Package cache provides TTL response caching with ETag support, backed by
// process memory or Redis.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"
)

// TTLLeagueInfo is the default lifetime of cached league metadata. The
// current week only moves once a week.
const TTLLeagueInfo = 10 * time.Minute

// Store is a response cache. Get reports a miss for disabled, expired or
// unreachable entries; Set returns the ETag of data even when it could not
// be stored.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, etag string, ok bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) string
	Close() error
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	return ifNoneMatch == etag
}
