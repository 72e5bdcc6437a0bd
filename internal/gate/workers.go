package gate

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/Prometheus-P/hwp-bridge/internal/common"
	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/corpus"
	"github.com/Prometheus-P/hwp-bridge/pkg/extractor"
	"github.com/Prometheus-P/hwp-bridge/pkg/harness"
	"github.com/Prometheus-P/hwp-bridge/pkg/manifest"
	"github.com/Prometheus-P/hwp-bridge/pkg/report"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// concat joins output streams the way they accumulate across invocations,
// with no separators, so classifier substring matches work across the blob.
func concat(streams ...[]byte) []byte {
	return bytes.Join(streams, nil)
}

// firstNonZero returns the first non-zero exit code, or 0 when all passed.
// The json invocation's code leads since that output is what ships.
func firstNonZero(codes ...int) int {
	for _, c := range codes {
		if c != 0 {
			return c
		}
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger, config *models.GateConfig, files []corpus.File, cats *manifest.CategoryMap, writer *report.Writer) []models.RunResult {
	runner := harness.NewRunner(config.HwpBin, config.Timeout)
	store := &storage.Storage{}

	logger.Info("Starting concurrent gate phase", "file_count", len(files), "workers", config.WorkerCount, "check_markdown", config.CheckMarkdown, "timeout", config.Timeout)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(files))
	results := make(chan indexedResult, len(files))

	for w := 1; w <= config.WorkerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, runner, store, config.CheckMarkdown, &wg, jobs, results)
	}

	for i, f := range files {
		jobs <- Job{Index: i, File: f, Category: cats.Category(f.Relpath)}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Details lines land in enumeration order no matter which worker
	// finished first, so reruns produce diffable artifacts.
	ordered := make([]models.RunResult, len(files))
	pending := make(map[int]models.RunResult, config.WorkerCount)
	next := 0
	for ir := range results {
		pending[ir.index] = ir.result
		for {
			r, ready := pending[next]
			if !ready {
				break
			}
			delete(pending, next)
			ordered[next] = r
			if err := writer.AppendDetail(r); err != nil {
				logger.Warn("Failed to append details line", "relpath", r.Relpath, "error", err)
			}
			next++
		}
	}

	logger.Info("All gate workers finished")
	return ordered
}

func worker(ctx context.Context, id int, logger *slog.Logger, runner *harness.Runner, store *storage.Storage, checkMarkdown bool, wg *sync.WaitGroup, jobs <-chan Job, results chan<- indexedResult) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started file", "worker_id", id, "relpath", job.File.Relpath)
		r := processFile(ctx, logger, runner, store, job, checkMarkdown)
		results <- indexedResult{index: job.Index, result: r}
		logger.Info("Worker finished file", "worker_id", id, "relpath", job.File.Relpath, "ok", r.OK)
	}
}

func processFile(ctx context.Context, logger *slog.Logger, runner *harness.Runner, store *storage.Storage, job Job, checkMarkdown bool) models.RunResult {
	r := models.RunResult{Relpath: job.File.Relpath}
	if job.Category != "" {
		cat := job.Category
		r.Category = &cat
	}
	if stats, err := store.GetFileStats(job.File.Path); err == nil {
		r.SizeBytes = stats.SizeBytes
	}

	// info runs first so encrypted and distribution documents fail fast
	// with a diagnostic the classifier can read.
	info := runner.Run(ctx, "info", job.File.Path)

	// Structured JSON twice for the determinism check.
	jsonA := runner.Run(ctx, "json", job.File.Path)
	jsonB := runner.Run(ctx, "json", job.File.Path)

	var mdA, mdB harness.Invocation
	if checkMarkdown {
		mdA = runner.Run(ctx, "markdown", job.File.Path)
		mdB = runner.Run(ctx, "markdown", job.File.Path)
		// Markdown determinism stands on its own pair of exits, so a
		// json failure does not suppress it.
		if mdA.Code == 0 && mdB.Code == 0 {
			shaA := common.ContentHash(mdA.Stdout)
			shaB := common.ContentHash(mdB.Stdout)
			det := shaA == shaB
			r.MdSHA256A = &shaA
			r.MdSHA256B = &shaB
			r.MdDeterministic = &det
		}
	}

	r.TimingMS = info.ElapsedMS + jsonA.ElapsedMS + jsonB.ElapsedMS + mdA.ElapsedMS + mdB.ElapsedMS
	r.OK = info.Code == 0 && jsonA.Code == 0 && jsonB.Code == 0 &&
		(!checkMarkdown || (mdA.Code == 0 && mdB.Code == 0))

	if !r.OK {
		kind := classifyError(
			concat(info.Stderr, jsonA.Stderr, jsonB.Stderr, mdA.Stderr, mdB.Stderr),
			concat(info.Stdout, jsonA.Stdout, jsonB.Stdout, mdA.Stdout, mdB.Stdout),
			firstNonZero(jsonA.Code, info.Code, mdA.Code, mdB.Code),
		)
		r.Error = &kind
		logger.Error("File failed", "relpath", job.File.Relpath, "error_type", kind, "timing_ms", r.TimingMS)
		return r
	}

	shaA := common.ContentHash(jsonA.Stdout)
	shaB := common.ContentHash(jsonB.Stdout)
	det := shaA == shaB
	r.OutSHA256A = &shaA
	r.OutSHA256B = &shaB
	r.Deterministic = &det
	if !det {
		logger.Warn("Non-deterministic json output", "relpath", job.File.Relpath, "sha_a", shaA, "sha_b", shaB)
	}

	if stats := extractor.ExtractStats(jsonA.Stdout); stats != nil {
		r.Sections = &stats.Sections
		r.Paragraphs = &stats.Paragraphs
		r.Tables = &stats.Tables
	}
	return r
}
