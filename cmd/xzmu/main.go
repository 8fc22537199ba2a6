// Where: cli/cmd/xzmu/main.go
// What: CLI entrypoint.
// Why: Execute xzmu commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru/xzmu-autologin/cli/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
