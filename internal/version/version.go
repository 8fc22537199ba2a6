// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report which build is talking to the portal when users file issues.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set with -ldflags "-X .../internal/version.Version=v1.2.3" on release builds.
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version when stamped, otherwise the short
// VCS revision from build info (suffixed with "(dirty)" for modified trees),
// otherwise "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
