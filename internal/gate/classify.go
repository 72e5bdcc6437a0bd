package gate

import (
	"strings"

	"github.com/Prometheus-P/hwp-bridge/pkg/harness"
)

// Failure type labels recorded in run results and summary counts.
const (
	ErrEncrypted    = "encrypted"
	ErrDistribution = "distribution"
	ErrSizeLimit    = "size_limit"
	ErrTimeout      = "timeout"
	ErrParse        = "parse_error"
)

// classifyError buckets a failed file by inspecting the hwp output streams
// and the dominant exit code. Text matches win over the timeout code since
// the binary may report the real cause before being killed.
func classifyError(stderr, stdout []byte, code int) string {
	msg := strings.ToLower(string(stderr) + "\n" + string(stdout))
	switch {
	case strings.Contains(msg, "encrypted") || strings.Contains(msg, "encryption"):
		return ErrEncrypted
	case strings.Contains(msg, "distribution"):
		return ErrDistribution
	case strings.Contains(msg, "size limit") || strings.Contains(msg, "sizelimit") || strings.Contains(msg, "limit exceeded"):
		return ErrSizeLimit
	case code == harness.TimeoutExitCode:
		return ErrTimeout
	default:
		return ErrParse
	}
}
