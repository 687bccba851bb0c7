package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/incidra/incidra/internal/domain"
	"github.com/incidra/incidra/internal/ports"
	"github.com/incidra/incidra/pkg/apperror"
)

const cacheNamespace = "dashboard"

// Cache key metric segments. A user's keys share the
// "dashboard:*:<subject>" prefix so one pattern delete invalidates them all.
const (
	metricStats        = "stats"
	metricIncidents    = "incidents"
	metricCallVolume   = "call_volume"
	metricSatisfaction = "satisfaction"
	metricPriority     = "priority"
	metricChannel      = "channel"
)

// DashboardUseCase orchestrates the cache-aside flow for every dashboard
// metric: cache read, on miss fetch and compute, write through, return.
// Cached data never outlives a single request in process memory.
type DashboardUseCase struct {
	store    ports.CacheStore
	fetcher  ports.IncidentFetcher
	logger   *logrus.Logger
	cacheTTL time.Duration
}

func NewDashboardUseCase(store ports.CacheStore, fetcher ports.IncidentFetcher, logger *logrus.Logger, cacheTTL time.Duration) *DashboardUseCase {
	return &DashboardUseCase{
		store:    store,
		fetcher:  fetcher,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// CacheKey builds the composite cache key for a metric and caller identity.
func CacheKey(metric, identity string) string {
	return fmt.Sprintf("%s:%s:%s", cacheNamespace, metric, identity)
}

// GetStats returns per-state incident counts for the caller, computed from
// the upstream incident list on a cache miss.
func (uc *DashboardUseCase) GetStats(ctx context.Context, claims *ports.Claims) (*domain.DashboardStats, error) {
	key := CacheKey(metricStats, claims.Subject)

	var cached domain.DashboardStats
	if uc.readCached(ctx, key, &cached) {
		return &cached, nil
	}

	incidents, err := uc.fetcher.FetchIncidents(ctx, claims)
	if err != nil {
		return nil, err
	}

	stats := domain.ComputeStats(incidents)
	uc.writeCached(ctx, key, stats)
	return &stats, nil
}

// GetRecentIncidents returns the caller's company incidents. Company users
// only; the role check runs before any cache or upstream interaction.
func (uc *DashboardUseCase) GetRecentIncidents(ctx context.Context, claims *ports.Claims) ([]domain.Incident, error) {
	if err := requireCompanyRole(claims); err != nil {
		return nil, err
	}

	key := CacheKey(metricIncidents, claims.Subject)

	var cached []domain.Incident
	if uc.readCached(ctx, key, &cached) {
		return cached, nil
	}

	incidents, err := uc.fetcher.FetchIncidents(ctx, claims)
	if err != nil {
		return nil, err
	}

	uc.writeCached(ctx, key, incidents)
	return incidents, nil
}

// GetPriorityDistribution returns incident counts per priority level.
// Company users only.
func (uc *DashboardUseCase) GetPriorityDistribution(ctx context.Context, claims *ports.Claims) (*domain.PriorityDistribution, error) {
	if err := requireCompanyRole(claims); err != nil {
		return nil, err
	}

	key := CacheKey(metricPriority, claims.Subject)

	var cached domain.PriorityDistribution
	if uc.readCached(ctx, key, &cached) {
		return &cached, nil
	}

	incidents, err := uc.fetcher.FetchIncidents(ctx, claims)
	if err != nil {
		return nil, err
	}

	dist := domain.ComputePriorityDistribution(incidents)
	uc.writeCached(ctx, key, dist)
	return &dist, nil
}

// GetChannelDistribution returns incident counts per reporting channel.
// Company users only.
func (uc *DashboardUseCase) GetChannelDistribution(ctx context.Context, claims *ports.Claims) (*domain.ChannelDistribution, error) {
	if err := requireCompanyRole(claims); err != nil {
		return nil, err
	}

	key := CacheKey(metricChannel, claims.Subject)

	var cached domain.ChannelDistribution
	if uc.readCached(ctx, key, &cached) {
		return &cached, nil
	}

	incidents, err := uc.fetcher.FetchIncidents(ctx, claims)
	if err != nil {
		return nil, err
	}

	dist := domain.ComputeChannelDistribution(incidents)
	uc.writeCached(ctx, key, dist)
	return &dist, nil
}

// GetCallVolume returns call volume trends. The series is a fixed
// placeholder until real call data is wired in; it still goes through the
// cache so the swap to real computation will not change the flow.
func (uc *DashboardUseCase) GetCallVolume(ctx context.Context, claims *ports.Claims) (*domain.CallVolumeSeries, error) {
	key := CacheKey(metricCallVolume, claims.Subject)

	var cached domain.CallVolumeSeries
	if uc.readCached(ctx, key, &cached) {
		return &cached, nil
	}

	series := placeholderCallVolume()
	uc.writeCached(ctx, key, series)
	return &series, nil
}

// GetSatisfaction returns customer satisfaction metrics. Placeholder data,
// same caveat as GetCallVolume.
func (uc *DashboardUseCase) GetSatisfaction(ctx context.Context, claims *ports.Claims) (*domain.SatisfactionSeries, error) {
	key := CacheKey(metricSatisfaction, claims.Subject)

	var cached domain.SatisfactionSeries
	if uc.readCached(ctx, key, &cached) {
		return &cached, nil
	}

	series := placeholderSatisfaction()
	uc.writeCached(ctx, key, series)
	return &series, nil
}

// ClearCache deletes every cached entry in the caller's namespace. This is
// the one cache operation whose failure reaches the caller: invalidation
// has no silent-degrade option.
func (uc *DashboardUseCase) ClearCache(ctx context.Context, claims *ports.Claims) error {
	pattern := fmt.Sprintf("%s:*:%s", cacheNamespace, claims.Subject)
	if !uc.store.DeleteMatching(ctx, pattern) {
		return apperror.NewInternal("Failed to clear cache")
	}
	return nil
}

func requireCompanyRole(claims *ports.Claims) error {
	if claims.UserType != "company" {
		return apperror.NewAuthorization("Only company users can access this endpoint")
	}
	return nil
}

func (uc *DashboardUseCase) readCached(ctx context.Context, key string, out interface{}) bool {
	payload, ok := uc.store.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		uc.logger.WithError(err).WithField("key", key).Warn("Discarding malformed cache entry")
		return false
	}
	return true
}

func (uc *DashboardUseCase) writeCached(ctx context.Context, key string, value interface{}) {
	if !uc.store.Set(ctx, key, value, uc.cacheTTL) {
		uc.logger.WithField("key", key).Warn("Failed to cache computed result")
	}
}

func placeholderCallVolume() domain.CallVolumeSeries {
	return domain.CallVolumeSeries{
		Labels:     []string{"00:00", "04:00", "08:00", "12:00", "16:00", "20:00"},
		Values:     []int{10, 5, 35, 45, 40, 20},
		Trend:      []domain.TimePoint{},
		TotalCalls: 155,
		PeakHour:   "12:00",
		LowestHour: "04:00",
	}
}

func placeholderSatisfaction() domain.SatisfactionSeries {
	return domain.SatisfactionSeries{
		Labels:                     []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		Values:                     []float64{85, 88, 82, 89, 90},
		Trend:                      []domain.TimePoint{},
		AverageScore:               86.8,
		TotalResponses:             500,
		PositiveFeedbackPercentage: 88.5,
	}
}
