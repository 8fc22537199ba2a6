// Where: cli/internal/app/save.go
// What: save command.
// Why: Persist the single portal account used by login.
package app

import (
	"fmt"
	"io"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/credential"
)

func runSave(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}

	cred, err := resolveCredentialInput(cli.Save.Username, cli.Save.Password, nil, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	if err := cmdCtx.Service.SaveCredential(cmdCtx.DataDir, cred.Username, cred.Password); err != nil {
		return exitWithError(out, err)
	}

	cmdCtx.Console.Success(fmt.Sprintf("Saved account %s", cred.Username))
	if path, err := credential.Path(cmdCtx.DataDir); err == nil {
		cmdCtx.Console.Item("File", path)
	}
	return 0
}
