// Package harness runs the hwp binary and captures one invocation's outcome.
package harness

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// TimeoutExitCode is the synthetic exit code reported when an invocation is
// killed for exceeding its deadline, matching the timeout(1) convention.
const TimeoutExitCode = 124

// Invocation captures everything observable from one hwp process run.
// Stdout and Stderr hold whatever the process wrote before exiting or being
// killed, so timeout cases still expose partial output for classification.
type Invocation struct {
	Code      int
	Stdout    []byte
	Stderr    []byte
	ElapsedMS int64
}

// Runner invokes a fixed binary with a per-invocation timeout.
type Runner struct {
	Bin     string
	Timeout time.Duration
}

// NewRunner creates a Runner for the given binary path.
func NewRunner(bin string, timeout time.Duration) *Runner {
	return &Runner{Bin: bin, Timeout: timeout}
}

// Run executes the binary with args and waits for it to finish or time out.
// The returned Invocation always carries elapsed time and any captured
// output; Code is TimeoutExitCode when the deadline killed the process, the
// process exit code otherwise, and -1 when the process could not start.
func (r *Runner) Run(ctx context.Context, args ...string) Invocation {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.Bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Don't wait forever on grandchildren that inherited our pipes.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	inv := Invocation{
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		ElapsedMS: elapsed,
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		inv.Code = TimeoutExitCode
	case err == nil:
		inv.Code = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			inv.Code = exitErr.ExitCode()
		} else {
			inv.Code = -1
		}
	}
	return inv
}
