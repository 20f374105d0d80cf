// Package sshkey validates OpenSSH public key text before it is forwarded to
// the TensorPool CLI, and materializes it as a temp file scoped to a single
// invocation. The checks are deliberately conservative: an automated caller
// should fail closed on unfamiliar key material rather than forward something
// ambiguous.
package sshkey

import (
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/tensorpool/tensorpool-mcp/internal/errors"
)

// privateKeyMarkers are substrings that identify PEM-encoded private key
// material. This is a heuristic, not a cryptographic guarantee: it catches
// the common accident of pasting the private half of a key pair.
var privateKeyMarkers = []string{
	"BEGIN OPENSSH PRIVATE KEY",
	"BEGIN RSA PRIVATE KEY",
	"BEGIN EC PRIVATE KEY",
	"PRIVATE KEY",
}

// allowedPrefixes is the allow-list of accepted OpenSSH public key types.
// If the tp CLI grows support for more formats, this list has to be extended
// by hand; keeping it short is a deliberate fail-closed choice.
var allowedPrefixes = []string{
	"ssh-ed25519 ",
	"ssh-rsa ",
	"ecdsa-sha2-nistp256 ",
}

// Validate checks that candidate is a well-formed OpenSSH public key line and
// returns the trimmed key text. The marker check runs before the prefix
// check, so private key material is rejected even when a valid-looking
// public prefix is also present.
func Validate(candidate string) (string, error) {
	key := strings.TrimSpace(candidate)

	if key == "" {
		return "", errors.New(errors.ErrKey,
			"ssh_public_key is empty",
			"Pass the single-line contents of your .pub file, e.g. 'ssh-ed25519 AAAA... user@host'")
	}

	for _, marker := range privateKeyMarkers {
		if strings.Contains(key, marker) {
			return "", errors.New(errors.ErrKey,
				"ssh_public_key looks like a PRIVATE key; refusing",
				"Pass the .pub file contents, never the private key itself")
		}
	}

	allowed := false
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(key, prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.New(errors.ErrKey,
			"ssh_public_key must start with a valid OpenSSH public key prefix",
			"Accepted types: ssh-ed25519, ssh-rsa, ecdsa-sha2-nistp256")
	}

	// The line must actually parse as an authorized_keys entry. This rejects
	// truncated or corrupted key blobs that pass the prefix check.
	if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(key)); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrKey,
			"ssh_public_key is not a parseable OpenSSH public key",
			"Copy the whole line from your .pub file without edits")
	}

	return key, nil
}
