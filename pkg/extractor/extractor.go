// Package extractor pulls document statistics out of hwp json payloads.
package extractor

import (
	"encoding/json"

	"github.com/Prometheus-P/hwp-bridge/models"
)

// Stats are the structural counts reported per document.
type Stats struct {
	Sections   int
	Paragraphs int
	Tables     int
}

// ExtractStats decodes an hwp json payload and counts its sections,
// paragraphs, and tables. Returns nil when the payload is not a JSON object,
// in which case the run result omits the stats fields entirely. A valid
// document with no sections key counts as zeros, not as missing.
func ExtractStats(payload []byte) *Stats {
	var doc *models.Document
	if err := json.Unmarshal(payload, &doc); err != nil || doc == nil {
		return nil
	}
	return &Stats{
		Sections:   len(doc.Sections),
		Paragraphs: doc.ParagraphCount(),
		Tables:     doc.TableCount(),
	}
}
