// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep branding and file names in one place.
package meta

const (
	// Project Identity
	AppName   = "xzmu"
	EnvPrefix = "XZMU"

	// Directory Layout
	HomeDir        = ".xzmu"
	ConfigFileName = "config.yaml"
	CredentialFile = "xzmu_auto_login.json"
)
