package sshkey

import (
	"os"

	"github.com/tensorpool/tensorpool-mcp/internal/errors"
	"github.com/tensorpool/tensorpool-mcp/internal/logger"
)

// TempKey is a validated public key written to a uniquely named temp file.
// Its lifetime is scoped to one tp invocation: callers defer Remove and the
// file never outlives the call, whatever the outcome.
type TempKey struct {
	path string
	log  logger.Logger
}

// WriteTempKey writes the key text plus a trailing newline (OpenSSH tooling
// expects one) to a fresh temp file. os.CreateTemp guarantees an unguessable,
// exclusively created name, so concurrent invocations never share a path.
// Permissions are locked to owner read/write before any content is written.
// On any failure the partial file is removed before the error returns.
func WriteTempKey(key string, log logger.Logger) (*TempKey, error) {
	if log == nil {
		log = logger.Noop()
	}

	f, err := os.CreateTemp("", "tp_pubkey_*.pub")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrKey,
			"Couldn't create a temp file for the public key",
			"Check the temp directory is writable")
	}

	cleanup := func() {
		f.Close()
		if rmErr := os.Remove(f.Name()); rmErr != nil {
			log.Warn("couldn't remove partial temp key file %s: %v", f.Name(), rmErr)
		}
	}

	if err := f.Chmod(0o600); err != nil {
		cleanup()
		return nil, errors.WrapWithCode(err, errors.ErrKey,
			"Couldn't restrict temp key file permissions",
			"Check the temp directory's filesystem supports permission bits")
	}

	if _, err := f.WriteString(key + "\n"); err != nil {
		cleanup()
		return nil, errors.WrapWithCode(err, errors.ErrKey,
			"Couldn't write the public key to the temp file",
			"Check the temp directory has free space")
	}

	if err := f.Close(); err != nil {
		cleanup()
		return nil, errors.WrapWithCode(err, errors.ErrKey,
			"Couldn't finish writing the temp key file",
			"Check the temp directory has free space")
	}

	return &TempKey{path: f.Name(), log: log}, nil
}

// Path returns the file path to pass to tp via -i.
func (k *TempKey) Path() string {
	return k.path
}

// Remove deletes the temp file. It is idempotent and best-effort: a removal
// failure is logged and never surfaced, so it can't mask the invocation
// result being returned to the caller.
func (k *TempKey) Remove() {
	if k.path == "" {
		return
	}
	if err := os.Remove(k.path); err != nil && !os.IsNotExist(err) {
		k.log.Warn("couldn't remove temp key file %s: %v", k.path, err)
	}
	k.path = ""
}
