package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
)

// ProviderStats is a rolling summary of one provider's calls
type ProviderStats struct {
	Provider           string           `json:"provider"`
	TotalRequests      int64            `json:"total_requests"`
	SuccessfulRequests int64            `json:"successful_requests"`
	FailedRequests     int64            `json:"failed_requests"`
	SuccessRate        float64          `json:"success_rate"`
	AverageLatencyMs   float64          `json:"average_latency_ms"`
	LastUsed           time.Time        `json:"last_used"`
	IsHealthy          bool             `json:"is_healthy"`
	ErrorBreakdown     map[string]int64 `json:"error_breakdown,omitempty"`
}

// OverallStats aggregates ProviderStats
type OverallStats struct {
	TotalRequests      int64           `json:"total_requests"`
	SuccessfulRequests int64           `json:"successful_requests"`
	OverallSuccessRate float64         `json:"overall_success_rate"`
	FastestProvider    string          `json:"fastest_provider,omitempty"`
	Providers          []ProviderStats `json:"providers"`
}

type statsTracker struct {
	mu            sync.RWMutex
	providerStats map[string]*ProviderStats
}

func newStatsTracker() *statsTracker {
	return &statsTracker{providerStats: make(map[string]*ProviderStats)}
}

func (t *statsTracker) recordSuccess(provider string, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := t.getOrCreate(provider)
	stats.TotalRequests++
	stats.SuccessfulRequests++
	stats.LastUsed = time.Now()
	stats.IsHealthy = true

	ms := float64(latency) / float64(time.Millisecond)
	if stats.AverageLatencyMs == 0 {
		stats.AverageLatencyMs = ms
	} else {
		// Weighted average favoring recent results
		stats.AverageLatencyMs = stats.AverageLatencyMs*0.8 + ms*0.2
	}

	stats.SuccessRate = float64(stats.SuccessfulRequests) / float64(stats.TotalRequests)
}

func (t *statsTracker) recordFailure(provider, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := t.getOrCreate(provider)
	stats.TotalRequests++
	stats.FailedRequests++
	stats.LastUsed = time.Now()
	stats.ErrorBreakdown[code]++

	stats.SuccessRate = float64(stats.SuccessfulRequests) / float64(stats.TotalRequests)
	if stats.TotalRequests >= 10 && stats.SuccessRate < 0.5 {
		stats.IsHealthy = false
	}
}

func (t *statsTracker) get(provider string) ProviderStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats, ok := t.providerStats[provider]
	if !ok {
		return ProviderStats{Provider: provider, IsHealthy: true}
	}
	return copyStats(stats)
}

func (t *statsTracker) overall() OverallStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := lo.MapToSlice(t.providerStats, func(_ string, s *ProviderStats) ProviderStats { return copyStats(s) })
	sort.Slice(all, func(i, j int) bool { return all[i].Provider < all[j].Provider })

	out := OverallStats{Providers: all}
	var fastest float64
	for _, s := range all {
		out.TotalRequests += s.TotalRequests
		out.SuccessfulRequests += s.SuccessfulRequests
		if s.AverageLatencyMs > 0 && (fastest == 0 || s.AverageLatencyMs < fastest) {
			fastest = s.AverageLatencyMs
			out.FastestProvider = s.Provider
		}
	}
	if out.TotalRequests > 0 {
		out.OverallSuccessRate = float64(out.SuccessfulRequests) / float64(out.TotalRequests)
	}
	return out
}

// getOrCreate must be called with the lock held
func (t *statsTracker) getOrCreate(provider string) *ProviderStats {
	stats, exists := t.providerStats[provider]
	if !exists {
		stats = &ProviderStats{
			Provider:       provider,
			IsHealthy:      true,
			ErrorBreakdown: make(map[string]int64),
		}
		t.providerStats[provider] = stats
	}
	return stats
}

func copyStats(s *ProviderStats) ProviderStats {
	c := *s
	c.ErrorBreakdown = lo.Assign(map[string]int64{}, s.ErrorBreakdown)
	return c
}
