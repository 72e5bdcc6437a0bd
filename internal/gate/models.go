package gate

import (
	"github.com/Prometheus-P/hwp-bridge/models"
	"github.com/Prometheus-P/hwp-bridge/pkg/corpus"
)

// Job is one corpus file queued for a worker. Index is the file's position
// in the enumeration order so results can be reassembled in that order.
type Job struct {
	Index    int
	File     corpus.File
	Category string
}

// indexedResult pairs a finished run result with its enumeration position.
type indexedResult struct {
	index  int
	result models.RunResult
}
