// Package models defines data structures for configuration, manifests, and run results.
package models

import "time"

// GateConfig holds runtime configuration for a gate run.
// All values come from CLI flags, not external config files.
type GateConfig struct {
	CorpusDir     string
	ManifestPath  string
	HwpBin        string
	Timeout       time.Duration
	CheckMarkdown bool
	MaxFiles      int
	WorkerCount   int
	ReportsDir    string
	CI            bool
	Thresholds    Thresholds
}

// Thresholds are the minimums a run must meet to pass the gate.
// They are carried into the summary artifact so every report records the
// bar it was judged against.
type Thresholds struct {
	MinCorpusSize        int              `json:"min_corpus_size"`
	MinSuccess           CategoryMinimums `json:"min_success"`
	MinDeterministicRate float64          `json:"min_deterministic_rate"`
}

// CategoryMinimums holds the per-category minimum success rates.
type CategoryMinimums struct {
	A float64 `json:"A"`
	B float64 `json:"B"`
	C float64 `json:"C"`
}
