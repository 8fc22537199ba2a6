// Where: cli/cmd/xzmu/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru/xzmu-autologin/cli/internal/app"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/credential"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/interaction"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

// buildDependencies constructs the runtime dependencies required by the CLI:
// the credential file store, the HTTP portal client and the huh prompter.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		In:       os.Stdin,
		Prompter: interaction.HuhPrompter{},
		Store:    credential.NewFileStore(),
		NewGateway: func(opts portal.Options) portal.Gateway {
			return portal.NewClient(opts)
		},
	}
}
