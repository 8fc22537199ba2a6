// Where: cli/internal/app/config_cmd.go
// What: config path/show commands.
// Why: Let users see where settings live and which endpoints are in effect.
package app

import (
	"fmt"
	"io"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/credential"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/fileops"
)

func runConfigPath(cli CLI, _ Dependencies, out io.Writer) int {
	path, err := resolveConfigPath(cli)
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprintln(out, path)
	return 0
}

func runConfigShow(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	credPath, err := credential.Path(cmdCtx.DataDir)
	if err != nil {
		return exitWithError(out, err)
	}
	ep := cmdCtx.Options.Endpoints.WithDefaults()

	console := cmdCtx.Console
	console.Header("⚙️", "Configuration")
	console.Item("Config file", cmdCtx.ConfigPath)
	console.Item("Data dir", cmdCtx.DataDir)
	if fileops.FileExists(credPath) {
		console.Item("Credential", credPath)
	} else {
		console.Item("Credential", credPath+" (not saved)")
	}
	console.BlockStart("🔗", "Endpoints")
	console.Item("Portal probe", ep.PortalProbeURL)
	console.Item("Redirect marker", ep.RedirectMarker)
	console.Item("Login", ep.LoginURL)
	console.Item("Referer", ep.Referer)
	console.Item("Gateway probe", ep.GatewayProbeURL)
	console.Item("Internet probe", ep.InternetProbeURL)
	console.Item("Intercept marker", ep.InterceptMarker)
	console.Item("User agent", ep.UserAgent)
	console.BlockStart("⏱️", "Timeouts")
	console.Item("Probe", cmdCtx.Options.ProbeTimeout)
	console.Item("Reachability", cmdCtx.Options.ReachabilityTimeout)
	return 0
}
