package tpcli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorpool/tensorpool-mcp/internal/logger"
)

// credEnviron returns a minimal environment carrying the canonical credential.
func credEnviron() []string {
	return []string{
		"PATH=" + os.Getenv("PATH"),
		EnvAPIKey + "=test-key",
	}
}

// bareEnviron returns an environment with neither credential variable set.
func bareEnviron() []string {
	return []string{"PATH=" + os.Getenv("PATH")}
}

func newTestRunner(binary string, environ func() []string) *CLIRunner {
	r := NewCLIRunner(binary, 30*time.Second, logger.Noop())
	r.Environ = environ
	return r
}

func TestRun_Success(t *testing.T) {
	r := newTestRunner("sh", credEnviron)

	res := r.Run(context.Background(), Invocation{Args: []string{"-c", "echo hello"}})

	assert.Equal(t, KindSuccess, res.Kind)
	assert.True(t, res.OK())
	assert.Equal(t, "hello", res.Render())
}

func TestRun_EmptyOutputRendersOK(t *testing.T) {
	r := newTestRunner("sh", credEnviron)

	res := r.Run(context.Background(), Invocation{Args: []string{"-c", "true"}})

	assert.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, "OK", res.Render(), "empty success output must render a placeholder")
}

func TestRun_Failure(t *testing.T) {
	r := newTestRunner("sh", credEnviron)

	res := r.Run(context.Background(), Invocation{
		Args: []string{"-c", `echo partial; echo "disk full" >&2; exit 2`},
	})

	assert.Equal(t, KindFailure, res.Kind)
	assert.False(t, res.OK())
	assert.Equal(t, 2, res.ExitCode)

	rendered := res.Render()
	assert.Contains(t, rendered, "exit=2")
	assert.Contains(t, rendered, "partial")
	assert.Contains(t, rendered, "disk full")
}

func TestRun_Timeout(t *testing.T) {
	r := newTestRunner("sh", credEnviron)

	marker := filepath.Join(t.TempDir(), "survived")
	start := time.Now()
	res := r.Run(context.Background(), Invocation{
		Args:    []string{"-c", "sleep 5 && touch " + marker},
		Timeout: 200 * time.Millisecond,
	})
	elapsed := time.Since(start)

	assert.Equal(t, KindTimeout, res.Kind)
	assert.Less(t, elapsed, 3*time.Second, "child should be killed at the bound, not waited out")
	assert.Contains(t, res.Render(), "timed out after")
	assert.Contains(t, res.Render(), "sleep 5", "timeout message should carry the command line")

	// The child was killed before it could create the marker file
	time.Sleep(100 * time.Millisecond)
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err), "child process should no longer be running")
}

func TestRun_BinaryNotFound(t *testing.T) {
	r := newTestRunner("definitely-not-a-real-binary-xyz123", credEnviron)

	res := r.Run(context.Background(), Invocation{Args: []string{"cluster", "list"}})

	assert.Equal(t, KindBinaryNotFound, res.Kind)
	assert.Contains(t, res.Render(), "definitely-not-a-real-binary-xyz123")
	assert.Contains(t, res.Render(), "not found")
}

func TestRun_MissingCredential(t *testing.T) {
	// The binary doesn't exist either: if the runner attempted a launch we'd
	// see KindBinaryNotFound, so KindMissingCredential proves the credential
	// gate fired before any spawn.
	r := newTestRunner("definitely-not-a-real-binary-xyz123", bareEnviron)

	res := r.Run(context.Background(), Invocation{Args: []string{"cluster", "list"}})

	assert.Equal(t, KindMissingCredential, res.Kind)
	assert.Contains(t, res.Render(), EnvAPIKey)
}

func TestRun_AliasBridging(t *testing.T) {
	r := newTestRunner("sh", func() []string {
		return []string{
			"PATH=" + os.Getenv("PATH"),
			EnvAPIKeyAlias + "=from-alias",
		}
	})

	res := r.Run(context.Background(), Invocation{
		Args: []string{"-c", "printf '%s' \"$" + EnvAPIKey + "\""},
	})

	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, "from-alias", res.Stdout, "alias should be bridged into the canonical variable")
}

func TestRun_AliasDoesNotOverrideCanonical(t *testing.T) {
	r := newTestRunner("sh", func() []string {
		return []string{
			"PATH=" + os.Getenv("PATH"),
			EnvAPIKey + "=canonical",
			EnvAPIKeyAlias + "=from-alias",
		}
	})

	res := r.Run(context.Background(), Invocation{
		Args: []string{"-c", "printf '%s' \"$" + EnvAPIKey + "\""},
	})

	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, "canonical", res.Stdout)
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner("sh", credEnviron)

	res := r.Run(context.Background(), Invocation{Args: []string{"-c", "pwd"}, Dir: dir})

	require.Equal(t, KindSuccess, res.Kind)
	assert.Contains(t, strings.TrimSpace(res.Stdout), filepath.Base(dir))
}

func TestRun_BadWorkingDirectory(t *testing.T) {
	r := newTestRunner("sh", credEnviron)

	res := r.Run(context.Background(), Invocation{
		Args: []string{"-c", "true"},
		Dir:  filepath.Join(t.TempDir(), "does-not-exist"),
	})

	assert.Equal(t, KindFailure, res.Kind)
	assert.Equal(t, -1, res.ExitCode)
	assert.NotEmpty(t, res.Stderr)
}

func TestBridgeCredential(t *testing.T) {
	tests := []struct {
		name     string
		environ  []string
		wantOK   bool
		wantovrd string // expected canonical value after bridging (when set)
	}{
		{
			name:    "neither set",
			environ: []string{"PATH=/usr/bin"},
			wantOK:  false,
		},
		{
			name:     "canonical set",
			environ:  []string{EnvAPIKey + "=abc"},
			wantOK:   true,
			wantovrd: "abc",
		},
		{
			name:     "alias only",
			environ:  []string{EnvAPIKeyAlias + "=xyz"},
			wantOK:   true,
			wantovrd: "xyz",
		},
		{
			name:     "both set, canonical wins",
			environ:  []string{EnvAPIKey + "=abc", EnvAPIKeyAlias + "=xyz"},
			wantOK:   true,
			wantovrd: "abc",
		},
		{
			name:    "empty canonical counts as unset",
			environ: []string{EnvAPIKey + "="},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := BridgeCredential(tt.environ)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantovrd, lookupEnv(env, EnvAPIKey))
			}
		})
	}
}

func TestRender_UnknownKind(t *testing.T) {
	res := &Result{Kind: Kind(99)}
	assert.Contains(t, res.Render(), "ERROR")
}
