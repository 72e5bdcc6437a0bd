// Package report writes the per-run gate artifacts: a JSONL details stream
// and an indented JSON summary, both named by the run's start timestamp so
// repeated runs never overwrite each other.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// Stamp formats a run start time into the artifact filename prefix.
// Example: 20240131-154502
func Stamp(t time.Time) string {
	return t.Format("20060102-150405")
}

// Writer owns one run's artifact files under a fixed reports dir.
type Writer struct {
	dir   string
	stamp string
	store *storage.Storage
}

// NewWriter creates the reports dir and a Writer stamped with the run start.
func NewWriter(dir string, start time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports dir: %w", err)
	}
	return &Writer{dir: dir, stamp: Stamp(start), store: &storage.Storage{}}, nil
}

// Timestamp returns the run's artifact stamp.
func (w *Writer) Timestamp() string {
	return w.stamp
}

// DetailsPath returns the path of the per-file JSONL stream.
func (w *Writer) DetailsPath() string {
	return filepath.Join(w.dir, w.stamp+"_details.jsonl")
}

// SummaryPath returns the path of the run summary JSON.
func (w *Writer) SummaryPath() string {
	return filepath.Join(w.dir, w.stamp+"_summary.json")
}

// AppendDetail writes one run result as a JSONL line. Results are appended
// as files finish, so a killed run still leaves the lines completed so far.
func (w *Writer) AppendDetail(r models.RunResult) error {
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshalling detail: %w", err)
	}
	return w.store.AppendFile(w.DetailsPath(), append(line, '\n'))
}

// WriteSummary persists the final run summary.
func (w *Writer) WriteSummary(s models.Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling summary: %w", err)
	}
	return w.store.SaveFile(w.SummaryPath(), data)
}
