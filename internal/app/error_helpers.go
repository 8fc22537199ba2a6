// Where: cli/internal/app/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure messages and next-step hints consistent across commands.
package app

import (
	"fmt"
	"io"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/ui"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	ui.New(out).Error(fmt.Sprint(err))
	return 1
}

// exitWithSuggestion prints a message followed by next steps.
func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	console := ui.New(out)
	console.Error(message)
	if len(suggestions) > 0 {
		console.Info("")
		console.Info("Next steps:")
		for _, s := range suggestions {
			console.Info(fmt.Sprintf("   - %s", s))
		}
	}
	return 1
}

// exitWithPortalError maps a portal error kind to a hint for the user.
func exitWithPortalError(out io.Writer, err error) int {
	switch portal.KindOf(err) {
	case portal.KindNotCaptive:
		return exitWithSuggestion(out, fmt.Sprintf("%v (already online or not on the campus network?)", err),
			[]string{"xzmu probe", "reconnect to the campus Wi-Fi and retry"})
	case portal.KindProbeFailed:
		return exitWithSuggestion(out, err.Error(),
			[]string{"check that the campus Wi-Fi is connected", "xzmu probe gateway"})
	case portal.KindConfigRead:
		return exitWithSuggestion(out, err.Error(),
			[]string{"xzmu save  (rewrites the credential file)"})
	}
	return exitWithError(out, err)
}
