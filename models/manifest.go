package models

// Manifest is the corpus metadata record consumed by the gate and produced
// by the scan command. It carries hashes and metadata only, never file
// contents, so it is safe to commit while the corpus itself stays local.
type Manifest struct {
	Version       string         `json:"version" yaml:"version"`
	GeneratedFrom string         `json:"generated_from" yaml:"generated_from"`
	Items         []ManifestItem `json:"items" yaml:"items"`
}

// ManifestItem describes one corpus file. Category assigns the quality tier
// used for per-category gating; files without one are tracked but never
// gated. Label fields (category, flags, source, notes) are hand-maintained
// and survive rescans.
type ManifestItem struct {
	ID        string         `json:"id" yaml:"id"`
	Relpath   string         `json:"relpath" yaml:"relpath"`
	SHA256    string         `json:"sha256" yaml:"sha256"`
	SizeBytes int64          `json:"size_bytes" yaml:"size_bytes"`
	Category  *string        `json:"category" yaml:"category"`
	Flags     map[string]any `json:"flags" yaml:"flags"`
	Source    SourceInfo     `json:"source" yaml:"source"`
	Notes     *string        `json:"notes" yaml:"notes"`
}

// SourceInfo records where a corpus file came from.
type SourceInfo struct {
	URL         *string `json:"url" yaml:"url"`
	LicenseNote *string `json:"license_note" yaml:"license_note"`
}

// ScanReport is the scan command's stdout summary.
type ScanReport struct {
	ManifestPath string `yaml:"manifest_path"`
	CorpusDir    string `yaml:"corpus_dir"`
	Items        int    `yaml:"items"`
	NewItems     int    `yaml:"new_items"`
	Preserved    int    `yaml:"preserved"`
	Labeled      int    `yaml:"labeled"`
	Unlabeled    int    `yaml:"unlabeled"`
	TotalBytes   int64  `yaml:"total_bytes"`
}
