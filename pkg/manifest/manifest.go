package manifest

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/storage"
)

// CategoryMap maps corpus relative paths to their normalized category.
// Order preserves the manifest's declared item order; when a manifest is
// present it is the source of truth for both which files run and the order
// they run in, which keeps report diffs stable across runs.
type CategoryMap struct {
	Order  []string
	ByPath map[string]string
}

// Len returns the number of relpaths the manifest declares.
func (m *CategoryMap) Len() int {
	return len(m.Order)
}

// Category returns the normalized category for relpath, or "" when the
// manifest leaves it unlabeled or does not know it.
func (m *CategoryMap) Category(relpath string) string {
	if m == nil {
		return ""
	}
	return m.ByPath[relpath]
}

// looseItem decodes manifest items without committing to field types, so a
// single malformed value degrades to "unlabeled" instead of rejecting the
// whole manifest.
type looseItem struct {
	Relpath  string `yaml:"relpath"`
	Category any    `yaml:"category"`
}

type looseManifest struct {
	Items []looseItem `yaml:"items"`
}

// LoadCategoryMap reads the corpus manifest and returns its relpath to
// category mapping. A missing or unparsable manifest yields an empty map
// and the run proceeds with every file unlabeled. Both YAML and JSON
// manifests decode.
func LoadCategoryMap(path string) *CategoryMap {
	cm := &CategoryMap{ByPath: make(map[string]string)}

	store := &storage.Storage{}
	data, err := store.ReadFile(path)
	if err != nil {
		return cm
	}

	var m looseManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return cm
	}

	for _, item := range m.Items {
		if item.Relpath == "" {
			continue
		}
		if _, seen := cm.ByPath[item.Relpath]; !seen {
			cm.Order = append(cm.Order, item.Relpath)
		}
		cm.ByPath[item.Relpath] = NormalizeCategory(item.Category)
	}
	return cm
}

// NormalizeCategory maps a raw manifest category value onto {A, B, C}.
// Anything else, including non-string values, normalizes to "" (unlabeled).
func NormalizeCategory(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case models.CategoryA:
		return models.CategoryA
	case models.CategoryB:
		return models.CategoryB
	case models.CategoryC:
		return models.CategoryC
	}
	return ""
}
