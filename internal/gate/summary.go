package gate

import (
	"fmt"

	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/analytics"
)

// bucketKeys is the fixed set of summary buckets; "_" collects files the
// manifest leaves unlabeled. All four appear in every summary, zeros kept.
var bucketKeys = []string{models.CategoryA, models.CategoryB, models.CategoryC, models.CategoryNone}

// aggregate holds the run-wide counts feeding the summary and gate decision.
// Timings only cover ok files, so percentiles describe the healthy path.
type aggregate struct {
	total    int
	ok       int
	det      int
	timings  []int64
	totals   map[string]int
	okByCat  map[string]int
	failures map[string]int
}

func aggregateResults(results []models.RunResult) aggregate {
	agg := aggregate{
		totals:   make(map[string]int, len(bucketKeys)),
		okByCat:  make(map[string]int, len(bucketKeys)),
		failures: make(map[string]int),
	}
	for _, k := range bucketKeys {
		agg.totals[k] = 0
		agg.okByCat[k] = 0
	}

	for _, r := range results {
		agg.total++
		k := r.Bucket()
		agg.totals[k]++
		if r.OK {
			agg.ok++
			agg.okByCat[k]++
			agg.timings = append(agg.timings, r.TimingMS)
			if r.Deterministic != nil && *r.Deterministic {
				agg.det++
			}
		} else {
			kind := "unknown"
			if r.Error != nil && *r.Error != "" {
				kind = *r.Error
			}
			agg.failures[kind]++
		}
	}
	return agg
}

func buildSummary(agg aggregate, th models.Thresholds, stamp string, artifacts models.ArtifactPaths) models.Summary {
	a := &analytics.Analytics{}

	rates := make(map[string]float64, len(bucketKeys))
	for _, k := range bucketKeys {
		rates[k] = a.Round4(a.Rate(agg.okByCat[k], agg.totals[k]))
	}

	return models.Summary{
		Timestamp:  stamp,
		TotalFiles: agg.total,
		OK:         agg.ok,
		Failed:     agg.total - agg.ok,
		PerCategory: models.CategoryBreakdown{
			Totals:      agg.totals,
			OK:          agg.okByCat,
			SuccessRate: rates,
		},
		DeterministicRate: a.Round4(a.Rate(agg.det, agg.ok)),
		TimingMS:          a.TimingPercentiles(agg.timings),
		FailuresByType:    agg.failures,
		Thresholds:        th,
		Artifacts:         artifacts,
		Notes: models.SummaryNotes{
			CategoryUnderscore: "Files without category in manifest.json are counted under '_' and are not gated unless you label them A/B/C.",
		},
	}
}

// evaluateGate applies the acceptance thresholds. Per-category bars compare
// against the rounded rates the summary reports; the determinism bar uses
// the raw rate. The "_" bucket never gates.
func evaluateGate(s models.Summary, agg aggregate, th models.Thresholds) bool {
	a := &analytics.Analytics{}
	gateOK := true

	if th.MinCorpusSize > 0 && agg.total < th.MinCorpusSize {
		gateOK = false
	}

	// Categories with no files never gate, whatever their threshold.
	mins := map[string]float64{
		models.CategoryA: th.MinSuccess.A,
		models.CategoryB: th.MinSuccess.B,
		models.CategoryC: th.MinSuccess.C,
	}
	for _, k := range []string{models.CategoryA, models.CategoryB, models.CategoryC} {
		if agg.totals[k] > 0 && s.PerCategory.SuccessRate[k] < mins[k] {
			gateOK = false
		}
	}

	if a.Rate(agg.det, agg.ok) < th.MinDeterministicRate {
		gateOK = false
	}
	return gateOK
}

// printCILine emits the one-line machine-scrapable run digest.
func printCILine(s models.Summary, summaryPath string) {
	fmt.Printf("[v1_gate] total=%d ok=%d det_rate=%v A=%v B=%v C=%v p95=%dms\n",
		s.TotalFiles, s.OK, s.DeterministicRate,
		s.PerCategory.SuccessRate[models.CategoryA],
		s.PerCategory.SuccessRate[models.CategoryB],
		s.PerCategory.SuccessRate[models.CategoryC],
		s.TimingMS.P95)
	fmt.Printf("[v1_gate] summary: %s\n", summaryPath)
}
