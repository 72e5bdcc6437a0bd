package models

// Category bucket keys used in per-category reporting. CategoryNone counts
// files the manifest leaves unlabeled; that bucket is reported but never
// compared against a threshold.
const (
	CategoryA    = "A"
	CategoryB    = "B"
	CategoryC    = "C"
	CategoryNone = "_"
)

// RunResult is one file's detail record, one JSON object per line in the
// details artifact. Optional fields are pointers so absent values serialize
// as explicit nulls: Error is null exactly when OK is true, the out hashes
// and Deterministic are set only when OK is true, the md fields are set
// whenever both markdown invocations exited 0, and the structural counts
// are set only when OK is true and the structured payload itself parsed.
type RunResult struct {
	Relpath   string  `json:"relpath"`
	Category  *string `json:"category"`
	SizeBytes int64   `json:"size_bytes"`
	OK        bool    `json:"ok"`
	Error     *string `json:"error"`
	TimingMS  int64   `json:"timing_ms"`

	OutSHA256A    *string `json:"out_sha256_a"`
	OutSHA256B    *string `json:"out_sha256_b"`
	Deterministic *bool   `json:"deterministic"`

	MdSHA256A       *string `json:"md_sha256_a"`
	MdSHA256B       *string `json:"md_sha256_b"`
	MdDeterministic *bool   `json:"md_deterministic"`

	Sections   *int `json:"sections"`
	Paragraphs *int `json:"paragraphs"`
	Tables     *int `json:"tables"`
}

// Bucket returns the category bucket this result counts under.
func (r *RunResult) Bucket() string {
	if r.Category == nil {
		return CategoryNone
	}
	switch *r.Category {
	case CategoryA, CategoryB, CategoryC:
		return *r.Category
	}
	return CategoryNone
}

// Summary is the per-run roll-up written once at the end of a run.
type Summary struct {
	Timestamp         string            `json:"timestamp"`
	TotalFiles        int               `json:"total_files"`
	OK                int               `json:"ok"`
	Failed            int               `json:"failed"`
	PerCategory       CategoryBreakdown `json:"per_category"`
	DeterministicRate float64           `json:"deterministic_rate"`
	TimingMS          TimingStats       `json:"timing_ms"`
	FailuresByType    map[string]int    `json:"failures_by_type"`
	Thresholds        Thresholds        `json:"thresholds"`
	Artifacts         ArtifactPaths     `json:"artifacts"`
	Notes             SummaryNotes      `json:"notes"`
}

// CategoryBreakdown reports totals, successes, and success rates across the
// four buckets {A, B, C, _}. Rates are rounded to four decimal places.
type CategoryBreakdown struct {
	Totals      map[string]int     `json:"totals"`
	OK          map[string]int     `json:"ok"`
	SuccessRate map[string]float64 `json:"success_rate"`
}

// TimingStats holds nearest-rank percentiles over successful files' total
// elapsed times, in milliseconds. All zero when no file succeeded.
type TimingStats struct {
	P50 int64 `json:"p50"`
	P95 int64 `json:"p95"`
	P99 int64 `json:"p99"`
}

// ArtifactPaths points at the two files this run produced.
type ArtifactPaths struct {
	DetailsJSONL string `json:"details_jsonl"`
	SummaryJSON  string `json:"summary_json"`
}

// SummaryNotes carries fixed explanatory notes into the summary artifact.
type SummaryNotes struct {
	CategoryUnderscore string `json:"category_underscore"`
}
