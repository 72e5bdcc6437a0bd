package gate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/corpus"
	"github.com/Prometheus-P/hwp-bridge/pkg/manifest"
	"github.com/Prometheus-P/hwp-bridge/pkg/report"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// GateAction runs the quality gate over the local corpus.
// Exit codes: 0 thresholds met, 2 thresholds not met, 3 setup missing.
func GateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	timeout, err := time.ParseDuration(c.String("timeout"))
	if err != nil {
		logger.Error("invalid timeout duration", "error", err)
		os.Exit(3)
	}

	config := &models.GateConfig{
		CorpusDir:     c.String("corpus-dir"),
		ManifestPath:  c.String("manifest"),
		HwpBin:        c.String("hwp-bin"),
		Timeout:       timeout,
		CheckMarkdown: c.Bool("check-markdown"),
		MaxFiles:      c.Int("max-files"),
		WorkerCount:   c.Int("workers"),
		ReportsDir:    c.String("reports-dir"),
		CI:            c.Bool("ci"),
		Thresholds: models.Thresholds{
			MinCorpusSize: c.Int("min-corpus-size"),
			MinSuccess: models.CategoryMinimums{
				A: c.Float64("min-success-a"),
				B: c.Float64("min-success-b"),
				C: c.Float64("min-success-c"),
			},
			MinDeterministicRate: c.Float64("min-deterministic-rate"),
		},
	}
	if config.WorkerCount < 1 {
		config.WorkerCount = 1
	}

	cats := manifest.LoadCategoryMap(config.ManifestPath)
	files, err := corpus.Resolve(config.CorpusDir, cats, config.MaxFiles)
	if err != nil {
		logger.Error("corpus setup failed", "error", err)
		os.Exit(3)
	}

	store := &storage.Storage{}
	if !store.HasFile(config.HwpBin) {
		logger.Error("hwp binary not found", "path", config.HwpBin)
		os.Exit(3)
	}

	writer, err := report.NewWriter(config.ReportsDir, startTime)
	if err != nil {
		logger.Error("failed to initialize reports dir", "error", err)
		os.Exit(3)
	}

	logger.Info("Gate run starting", "corpus_dir", config.CorpusDir, "manifest", config.ManifestPath, "hwp_bin", config.HwpBin, "files", len(files), "labeled", cats.Len())

	results := run(c.Context, logger, config, files, cats, writer)

	agg := aggregateResults(results)
	summary := buildSummary(agg, config.Thresholds, writer.Timestamp(), models.ArtifactPaths{
		DetailsJSONL: writer.DetailsPath(),
		SummaryJSON:  writer.SummaryPath(),
	})
	if err := writer.WriteSummary(summary); err != nil {
		logger.Warn("Failed to write summary artifact", "error", err)
	}

	gateOK := evaluateGate(summary, agg, config.Thresholds)
	logger.Info("Gate evaluated", "gate_ok", gateOK, "total", summary.TotalFiles, "ok", summary.OK, "failed", summary.Failed, "det_rate", summary.DeterministicRate)

	if config.CI {
		printCILine(summary, writer.SummaryPath())
	}

	if !gateOK {
		fmt.Println("[v1_gate] FAILED thresholds")
		if data, err := json.MarshalIndent(summary, "", "  "); err == nil {
			fmt.Println(string(data))
		}
		os.Exit(2)
	}

	return nil
}
