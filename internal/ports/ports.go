package ports

import (
	"context"
	"time"

	"github.com/incidra/incidra/internal/domain"
)

// CacheStore is the caching contract backed by a shared key-value store.
// The cache is a pure optimization layer: Get and Set never return errors,
// a store failure is reported as a miss / false and logged by the
// implementation. Only DeleteMatching surfaces failure to the caller,
// because invalidation has no silent-degrade option.
type CacheStore interface {
	// Get returns the raw JSON payload stored under key, or ok=false on a
	// miss, an expired entry or a store failure.
	Get(ctx context.Context, key string) (payload []byte, ok bool)

	// Set serializes value to JSON and stores it under key with the given
	// TTL. Returns false on serialization or store failure.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool

	// DeleteMatching removes every key matching the glob pattern. Returns
	// false when the store could not complete the deletion.
	DeleteMatching(ctx context.Context, pattern string) bool

	// Ping reports store liveness for health checks.
	Ping(ctx context.Context) (healthy bool, message string)
}

// IncidentFetcher retrieves incident records from the upstream
// incident-query service on behalf of an authenticated caller.
type IncidentFetcher interface {
	FetchIncidents(ctx context.Context, claims *Claims) ([]domain.Incident, error)
}

// Claims is the identity extracted from a caller's bearer token.
type Claims struct {
	Subject  string
	UserType string
	Raw      map[string]interface{}
}

// TokenService separates the two trust boundaries around tokens: verifying
// inbound caller tokens and minting fresh service-to-service credentials
// for upstream calls.
type TokenService interface {
	Verify(token string) (*Claims, error)
	Mint(claims *Claims) (string, error)
}
