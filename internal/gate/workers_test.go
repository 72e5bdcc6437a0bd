package gate

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/corpus"
	"github.com/Prometheus-P/hwp-bridge/pkg/harness"
	"github.com/Prometheus-P/hwp-bridge/pkg/report"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// writeScript creates an executable stub standing in for the hwp binary.
// The stub dispatches on the subcommand in $1.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hwp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to write stub hwp: %v", err)
	}
	return path
}

// writeDoc creates one corpus file and returns it.
func writeDoc(t *testing.T, name, content string) corpus.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}
	return corpus.File{Path: path, Relpath: name}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

const validDoc = `{"sections":[{"index":0,"content":[{"type":"paragraph"},{"type":"table"},{"type":"paragraph"}]}]}`

func TestProcessFile_Success(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) exit 0 ;;
  json) printf '%s' '`+validDoc+`' ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "hwp-bytes")
	runner := harness.NewRunner(bin, 5*time.Second)
	job := Job{Index: 0, File: file, Category: "A"}

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, job, false)

	if !r.OK {
		t.Fatalf("OK = false, want true (error=%v)", r.Error)
	}
	if r.Category == nil || *r.Category != "A" {
		t.Errorf("Category = %v, want A", r.Category)
	}
	if r.SizeBytes != int64(len("hwp-bytes")) {
		t.Errorf("SizeBytes = %d, want %d", r.SizeBytes, len("hwp-bytes"))
	}
	if r.OutSHA256A == nil || r.OutSHA256B == nil {
		t.Fatal("output hashes missing on success")
	}
	if *r.OutSHA256A != *r.OutSHA256B {
		t.Errorf("hashes differ: %s vs %s", *r.OutSHA256A, *r.OutSHA256B)
	}
	if r.Deterministic == nil || !*r.Deterministic {
		t.Errorf("Deterministic = %v, want true", r.Deterministic)
	}
	if r.Sections == nil || *r.Sections != 1 {
		t.Errorf("Sections = %v, want 1", r.Sections)
	}
	if r.Paragraphs == nil || *r.Paragraphs != 2 {
		t.Errorf("Paragraphs = %v, want 2", r.Paragraphs)
	}
	if r.Tables == nil || *r.Tables != 1 {
		t.Errorf("Tables = %v, want 1", r.Tables)
	}
	if r.Error != nil {
		t.Errorf("Error = %v, want nil", *r.Error)
	}
	if r.MdSHA256A != nil || r.MdDeterministic != nil {
		t.Error("markdown fields set without --check-markdown")
	}
}

func TestProcessFile_UnlabeledHasNilCategory(t *testing.T) {
	bin := writeScript(t, `exit 0`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 5*time.Second)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, false)
	if r.Category != nil {
		t.Errorf("Category = %v, want nil for unlabeled file", *r.Category)
	}
}

func TestProcessFile_EncryptedClassified(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) exit 0 ;;
  json) echo "Error: file is encrypted" >&2; exit 2 ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 5*time.Second)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, false)

	if r.OK {
		t.Fatal("OK = true, want false")
	}
	if r.Error == nil || *r.Error != ErrEncrypted {
		t.Errorf("Error = %v, want %q", r.Error, ErrEncrypted)
	}
	if r.OutSHA256A != nil || r.Deterministic != nil {
		t.Error("hash fields set on failed file")
	}
	if r.Sections != nil {
		t.Error("stats set on failed file")
	}
}

func TestProcessFile_InfoFailureClassified(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) echo "distribution document" >&2; exit 1 ;;
  json) printf '%s' '`+validDoc+`' ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 5*time.Second)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, false)

	if r.OK {
		t.Fatal("OK = true, want false when info fails")
	}
	if r.Error == nil || *r.Error != ErrDistribution {
		t.Errorf("Error = %v, want %q", r.Error, ErrDistribution)
	}
}

func TestProcessFile_Timeout(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) exit 0 ;;
  json) sleep 5 ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 200*time.Millisecond)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, false)

	if r.OK {
		t.Fatal("OK = true, want false on timeout")
	}
	if r.Error == nil || *r.Error != ErrTimeout {
		t.Errorf("Error = %v, want %q", r.Error, ErrTimeout)
	}
}

func TestProcessFile_NonDeterministicOutput(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) exit 0 ;;
  json) printf '{"sections":[],"metadata":{"title":"%s"}}' "$(date +%s%N)" ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 5*time.Second)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, false)

	if !r.OK {
		t.Fatalf("OK = false, want true (error=%v)", r.Error)
	}
	if r.Deterministic == nil || *r.Deterministic {
		t.Errorf("Deterministic = %v, want false for varying output", r.Deterministic)
	}
	if *r.OutSHA256A == *r.OutSHA256B {
		t.Error("hashes match for varying output")
	}
}

func TestProcessFile_MarkdownPairIndependentOfOK(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) exit 0 ;;
  json) echo "mangled record tree" >&2; exit 3 ;;
  markdown) printf '# Title\n' ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 5*time.Second)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, true)

	if r.OK {
		t.Fatal("OK = true, want false with json failing")
	}
	if r.Error == nil || *r.Error != ErrParse {
		t.Errorf("Error = %v, want %q", r.Error, ErrParse)
	}
	// The markdown pair succeeded on its own and still gets hashed.
	if r.MdSHA256A == nil || r.MdSHA256B == nil {
		t.Fatal("markdown hashes missing")
	}
	if r.MdDeterministic == nil || !*r.MdDeterministic {
		t.Errorf("MdDeterministic = %v, want true", r.MdDeterministic)
	}
}

func TestProcessFile_MarkdownFailureFailsFile(t *testing.T) {
	bin := writeScript(t, `case "$1" in
  info) exit 0 ;;
  json) printf '%s' '`+validDoc+`' ;;
  markdown) exit 1 ;;
esac
`)
	file := writeDoc(t, "doc.hwp", "x")
	runner := harness.NewRunner(bin, 5*time.Second)

	r := processFile(context.Background(), testLogger(), runner, &storage.Storage{}, Job{File: file}, true)

	if r.OK {
		t.Fatal("OK = true, want false when markdown fails under --check-markdown")
	}
	if r.MdSHA256A != nil || r.MdDeterministic != nil {
		t.Error("markdown fields set for failing markdown pair")
	}
}

func TestRun_DetailsKeepEnumerationOrder(t *testing.T) {
	bin := writeScript(t, `case "$2" in
  *slow*) sleep 0.3 ;;
esac
case "$1" in
  info) exit 0 ;;
  json) printf '{"sections":[]}' ;;
esac
`)

	files := []corpus.File{
		writeDoc(t, "slow.hwp", "s"),
		writeDoc(t, "b.hwp", "b"),
		writeDoc(t, "c.hwp", "c"),
		writeDoc(t, "d.hwp", "d"),
	}

	writer, err := report.NewWriter(t.TempDir(), time.Now())
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}

	config := &models.GateConfig{
		HwpBin:      bin,
		Timeout:     5 * time.Second,
		WorkerCount: 4,
	}

	results := run(context.Background(), testLogger(), config, files, nil, writer)

	if len(results) != len(files) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(files))
	}
	for i, f := range files {
		if results[i].Relpath != f.Relpath {
			t.Errorf("results[%d].Relpath = %q, want %q", i, results[i].Relpath, f.Relpath)
		}
	}

	data, err := os.ReadFile(writer.DetailsPath())
	if err != nil {
		t.Fatalf("failed to read details: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != len(files) {
		t.Fatalf("details has %d lines, want %d", len(lines), len(files))
	}
	for i, f := range files {
		if !strings.Contains(lines[i], `"relpath":"`+f.Relpath+`"`) {
			t.Errorf("details line %d = %s, want %s first", i, lines[i], f.Relpath)
		}
	}
}
