package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Prometheus-P/hwp-bridge/internal/common"
	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// Load reads a previously generated manifest for label merging.
// Returns nil when the manifest does not exist or cannot be parsed, which
// scanners treat as "no prior labels".
func Load(path string) *models.Manifest {
	store := &storage.Storage{}
	data, err := store.ReadFile(path)
	if err != nil {
		return nil
	}
	var m models.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil
	}
	return &m
}

// Generate builds a fresh manifest for the given corpus files, hashing each
// one. Labels and annotations from prev carry over by relpath, so re-scanning
// after adding files never loses curation work already done.
func Generate(corpusDir string, relpaths []string, prev *models.Manifest) (*models.Manifest, error) {
	kept := make(map[string]models.ManifestItem)
	if prev != nil {
		for _, item := range prev.Items {
			kept[item.Relpath] = item
		}
	}

	m := &models.Manifest{
		Version:       "1",
		GeneratedFrom: corpusDir,
		Items:         make([]models.ManifestItem, 0, len(relpaths)),
	}

	for _, rel := range relpaths {
		sum, size, err := hashFile(filepath.Join(corpusDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("error hashing %s: %w", rel, err)
		}

		item := models.ManifestItem{
			ID:        common.FlattenID(rel),
			Relpath:   rel,
			SHA256:    sum,
			SizeBytes: size,
			Flags:     map[string]any{},
		}
		if old, ok := kept[rel]; ok {
			item.Category = old.Category
			item.Source = old.Source
			item.Notes = old.Notes
			if len(old.Flags) > 0 {
				item.Flags = old.Flags
			}
		}
		m.Items = append(m.Items, item)
	}

	return m, nil
}

// Write persists the manifest as indented JSON via the storage layer.
func Write(path string, m *models.Manifest, s *storage.Storage) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating manifest dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving manifest: %w", err)
	}
	return nil
}

// hashFile streams the file through SHA256 and reports its size.
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
