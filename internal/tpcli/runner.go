// Package tpcli invokes the TensorPool `tp` CLI and normalizes the outcome
// into a uniform text contract for a calling agent. One child process per
// call, no shared state between concurrent calls, and never a retry:
// cluster and job operations are not idempotent, so a blind retry could
// duplicate billable resources.
package tpcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tensorpool/tensorpool-mcp/internal/logger"
)

// Invocation describes one tp call. Args never includes the binary itself;
// the first element is the tp sub-command word (e.g. "cluster").
type Invocation struct {
	Args []string
	// Dir is the working directory; empty means the server's own cwd.
	Dir string
	// Timeout overrides the runner default when positive.
	Timeout time.Duration
}

// Runner runs tp invocations. Tools depend on this interface so tests can
// substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, inv Invocation) *Result
}

// CLIRunner is the production Runner backed by os/exec.
type CLIRunner struct {
	// Binary is the tp executable name or path.
	Binary string
	// DefaultTimeout applies when an Invocation carries none.
	DefaultTimeout time.Duration
	// Environ supplies the base environment; nil means os.Environ.
	Environ func() []string
	// Log receives debug traces and cleanup warnings.
	Log logger.Logger
}

// NewCLIRunner returns a runner for the given binary with the given default timeout.
func NewCLIRunner(binary string, defaultTimeout time.Duration, log logger.Logger) *CLIRunner {
	if log == nil {
		log = logger.Noop()
	}
	return &CLIRunner{
		Binary:         binary,
		DefaultTimeout: defaultTimeout,
		Log:            log,
	}
}

// Run executes one tp invocation and never returns an error: every outcome,
// including a missing credential or a missing binary, is a Result variant.
//
// The credential gate runs before anything is spawned. Launching tp without
// an API key would make it prompt interactively and hang the server.
func (r *CLIRunner) Run(ctx context.Context, inv Invocation) *Result {
	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = r.DefaultTimeout
	}

	res := &Result{
		Command: strings.Join(append([]string{r.Binary}, inv.Args...), " "),
		Binary:  r.Binary,
		Bound:   timeout.String(),
	}

	environ := os.Environ()
	if r.Environ != nil {
		environ = r.Environ()
	}
	env, ok := BridgeCredential(environ)
	if !ok {
		r.Log.Debug("refusing to run %q: credential not set", res.Command)
		res.Kind = KindMissingCredential
		return res
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Log.Debug("running %q (timeout %s)", res.Command, timeout)
	start := time.Now()
	err := cmd.Run()
	r.Log.Debug("finished %q in %s", res.Command, time.Since(start).Round(time.Millisecond))

	// Go's []byte-to-string conversion is lossy-safe on invalid encodings,
	// so capture never fails the call.
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		// CommandContext has already killed the child.
		res.Kind = KindTimeout
		return res
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			res.Kind = KindFailure
			res.ExitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrNotFound):
			res.Kind = KindBinaryNotFound
		default:
			// Launch failures that aren't a missing binary (bad working
			// directory, permission problems). Report as a failure so the
			// caller sees the reason instead of an opaque crash.
			res.Kind = KindFailure
			res.ExitCode = -1
			res.Stderr = err.Error()
		}
		return res
	}

	res.Kind = KindSuccess
	return res
}
