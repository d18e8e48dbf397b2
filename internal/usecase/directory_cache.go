package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"staff-directory/internal/tenant"
)

const directoryCacheTTL = 60 * time.Second

// DirectoryCache holds rendered directory pages for a short window.
// Implementations must degrade to misses rather than surface errors
// when the backing store is down.
type DirectoryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type directoryListCacheKeyInput struct {
	Search         string `json:"search"`
	Department     string `json:"department"`
	OfficeLocation string `json:"office_location"`
	IncludeHidden  bool   `json:"include_hidden"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

func normalizeCacheValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// DirectoryListCacheKey derives a stable key from the normalized
// filter, scoped per tenant so invalidation never crosses tenants.
func DirectoryListCacheKey(t tenant.ID, f DirectoryFilter) string {
	in := directoryListCacheKeyInput{
		Search:         normalizeCacheValue(f.Search),
		Department:     normalizeCacheValue(f.Department),
		OfficeLocation: normalizeCacheValue(f.OfficeLocation),
		IncludeHidden:  f.IncludeHidden,
		Limit:          f.Limit,
		Offset:         f.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "directory:list:" + t.String() + ":" + hex.EncodeToString(sum[:])
}

func directoryListInvalidationPattern(t tenant.ID) string {
	return "directory:list:" + t.String() + ":*"
}
