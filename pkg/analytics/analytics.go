package analytics

import (
	"math"
	"sort"

	"github.com/Prometheus-P/hwp-bridge/models"
)

type Analytics struct{}

// Rate returns ok/total, or 0 when total is zero.
func (a *Analytics) Rate(ok, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total)
}

// Round4 rounds a rate to four decimal places for reporting. Halfway cases
// round to even.
func (a *Analytics) Round4(v float64) float64 {
	return math.RoundToEven(v*10000) / 10000
}

// TimingPercentiles computes nearest-rank p50/p95/p99 over per-file
// timings. An empty input yields all-zero percentiles.
func (a *Analytics) TimingPercentiles(values []int64) models.TimingStats {
	if len(values) == 0 {
		return models.TimingStats{}
	}

	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return models.TimingStats{
		P50: nearestRank(sorted, 0.50),
		P95: nearestRank(sorted, 0.95),
		P99: nearestRank(sorted, 0.99),
	}
}

// nearestRank picks the element at round(p * (len-1)), clamped to the valid
// index range. Halfway ranks round to even.
func nearestRank(sorted []int64, p float64) int64 {
	idx := int(math.RoundToEven(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
