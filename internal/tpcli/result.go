package tpcli

import (
	"fmt"
	"strings"
)

// Kind tags the outcome of one tp invocation. Exactly one kind holds per
// invocation; there are no partial states.
type Kind int

const (
	// KindSuccess means the process exited zero.
	KindSuccess Kind = iota
	// KindFailure means the process exited non-zero.
	KindFailure
	// KindTimeout means the process was killed after the configured bound.
	KindTimeout
	// KindBinaryNotFound means the tp executable is not on the search path.
	KindBinaryNotFound
	// KindMissingCredential means TENSORPOOL_API_KEY (and its alias) is unset;
	// no process was spawned.
	KindMissingCredential
)

// Result is the normalized outcome of one tp invocation.
type Result struct {
	Kind     Kind
	ExitCode int
	Stdout   string
	Stderr   string

	// Command is the full command line, kept for diagnostics.
	Command string
	// Binary is the executable name, used in the not-found message.
	Binary string
	// Bound is the timeout that applied to the invocation.
	Bound string
}

// OK reports whether the invocation succeeded.
func (r *Result) OK() bool {
	return r.Kind == KindSuccess
}

// Render produces the single descriptive string that crosses the tool
// boundary back to the calling agent.
func (r *Result) Render() string {
	switch r.Kind {
	case KindSuccess:
		out := strings.TrimSpace(r.Stdout)
		if out == "" {
			// Never hand the caller an empty success payload
			return "OK"
		}
		return out
	case KindFailure:
		return fmt.Sprintf("ERROR (exit=%d)\nSTDOUT:\n%s\n\nSTDERR:\n%s",
			r.ExitCode, strings.TrimSpace(r.Stdout), strings.TrimSpace(r.Stderr))
	case KindTimeout:
		return fmt.Sprintf("ERROR: Command timed out after %s: %s", r.Bound, r.Command)
	case KindBinaryNotFound:
		return fmt.Sprintf("ERROR: '%s' CLI not found. Install with: uv add tensorpool", r.Binary)
	case KindMissingCredential:
		return fmt.Sprintf("ERROR: %s is not set in the environment.", EnvAPIKey)
	default:
		return fmt.Sprintf("ERROR: unknown result kind %d", r.Kind)
	}
}
