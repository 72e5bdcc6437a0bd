package corpus

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/corpus"
	"github.com/Prometheus-P/hwp-bridge/pkg/manifest"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// ScanAction walks the corpus dir and regenerates the manifest. Hashes and
// metadata only; file contents never leave the machine. Labels already in
// the manifest carry over to the regenerated one.
func ScanAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	corpusDir := c.String("corpus-dir")
	manifestPath := c.String("manifest")

	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		return fmt.Errorf("failed to create corpus dir: %w", err)
	}

	files, err := corpus.ScanDir(corpusDir)
	if err != nil {
		return err
	}
	logger.Info("Corpus scan starting", "corpus_dir", corpusDir, "files", len(files))

	relpaths := make([]string, len(files))
	for i, f := range files {
		relpaths[i] = f.Relpath
	}

	prev := manifest.Load(manifestPath)
	m, err := manifest.Generate(corpusDir, relpaths, prev)
	if err != nil {
		return err
	}

	store := &storage.Storage{}
	if err := manifest.Write(manifestPath, m, store); err != nil {
		return err
	}
	logger.Info("Manifest written", "path", manifestPath, "items", len(m.Items))

	known := make(map[string]bool)
	if prev != nil {
		for _, item := range prev.Items {
			known[item.Relpath] = true
		}
	}

	rep := models.ScanReport{
		ManifestPath: manifestPath,
		CorpusDir:    corpusDir,
		Items:        len(m.Items),
	}
	for _, item := range m.Items {
		rep.TotalBytes += item.SizeBytes
		if !known[item.Relpath] {
			rep.NewItems++
		} else {
			rep.Preserved++
		}
		if item.Category != nil && manifest.NormalizeCategory(*item.Category) != "" {
			rep.Labeled++
		} else {
			rep.Unlabeled++
		}
	}

	// Output report as YAML
	yamlBytes, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal scan report: %w", err)
	}

	fmt.Print(string(yamlBytes))
	return nil
}
