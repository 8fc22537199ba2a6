// Where: cli/internal/app/login.go
// What: login command.
// Why: Bootstrap the portal session and submit the saved (or given) account.
package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

func runLogin(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	// Bootstrap and login get separate deadlines so time spent at the
	// password prompt does not count against the login request.
	bootCtx, cancelBoot := cmdCtx.withTimeout()
	state, err := cmdCtx.Service.Bootstrap(bootCtx, cmdCtx.DataDir)
	cancelBoot()
	if err != nil {
		return exitWithPortalError(out, err)
	}

	cred, err := resolveCredentialInput(cli.Login.Username, cli.Login.Password, state.Credential, deps)
	if err != nil {
		return exitWithSuggestion(out, err.Error(), []string{"xzmu save -u <account> -p <password>"})
	}
	if cli.Login.Save {
		if err := cmdCtx.Service.SaveCredential(cmdCtx.DataDir, cred.Username, cred.Password); err != nil {
			return exitWithError(out, err)
		}
	}

	loginCtx, cancelLogin := cmdCtx.withTimeout()
	defer cancelLogin()
	body, err := cmdCtx.Service.Login(loginCtx, cred, *state.Session)
	if err != nil {
		return exitWithError(out, err)
	}
	cmdCtx.Logger.Debug("login reply", zap.Int("bytes", len(body)))

	if cli.Login.Raw {
		fmt.Fprintln(out, body)
		return 0
	}

	result, err := parseLoginReply(body)
	if err != nil {
		cmdCtx.Console.Warn(fmt.Sprintf("Unrecognized portal reply: %v", err))
		cmdCtx.Console.ItemPlain(body)
		return 0
	}
	if !result.Success {
		msg := fmt.Sprintf("Login rejected: %s", result.Message)
		if result.RetCode != "" {
			msg = fmt.Sprintf("%s (ret_code %s)", msg, result.RetCode)
		}
		cmdCtx.Console.Error(msg)
		return 1
	}
	cmdCtx.Console.Success(fmt.Sprintf("Logged in as %s: %s", cred.Username, result.Message))
	return 0
}
