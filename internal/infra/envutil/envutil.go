// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/xzmu-autologin/cli/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining ENV_PREFIX (default XZMU) with the given suffix.
// Example: HostEnvKey("DATA_DIR") returns "XZMU_DATA_DIR".
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv("ENV_PREFIX"))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable, trimmed.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

