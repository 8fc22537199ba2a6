// Where: cli/internal/app/version.go
// What: version command.
package app

import (
	"fmt"
	"io"

	"github.com/poruru/xzmu-autologin/cli/internal/meta"
	"github.com/poruru/xzmu-autologin/cli/internal/version"
)

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", meta.AppName, version.GetVersion())
	return 0
}
