package tpcli

import "strings"

const (
	// EnvAPIKey is the canonical variable the tp CLI reads.
	EnvAPIKey = "TENSORPOOL_API_KEY"
	// EnvAPIKeyAlias is a caller-facing alias, bridged into the canonical
	// name before every invocation.
	EnvAPIKeyAlias = "TP_API_KEY"
)

// BridgeCredential copies the alias variable into the canonical name when the
// canonical one is unset, without overwriting an existing canonical value.
// It returns the (possibly extended) environment and whether a non-empty
// credential is present under the canonical name afterward.
func BridgeCredential(environ []string) ([]string, bool) {
	canonical := lookupEnv(environ, EnvAPIKey)
	if canonical != "" {
		return environ, true
	}

	alias := lookupEnv(environ, EnvAPIKeyAlias)
	if alias == "" {
		return environ, false
	}

	bridged := make([]string, 0, len(environ)+1)
	bridged = append(bridged, environ...)
	bridged = append(bridged, EnvAPIKey+"="+alias)
	return bridged, true
}

// lookupEnv returns the last value for key in environ, matching the
// last-wins semantics of exec.Cmd.Env.
func lookupEnv(environ []string, key string) string {
	prefix := key + "="
	value := ""
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			value = kv[len(prefix):]
		}
	}
	return value
}
