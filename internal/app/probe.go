// Where: cli/internal/app/probe.go
// What: probe command.
// Why: Quick yes/no connectivity checks, usable from scripts via the exit code.
package app

import (
	"io"
)

func runProbe(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	ctx, cancel := cmdCtx.withTimeout()
	defer cancel()

	target := cli.Probe.Target
	if target == "" {
		target = "all"
	}

	console := cmdCtx.Console
	ok := true
	if target == "gateway" || target == "all" {
		reachable := cmdCtx.Service.ProbeGateway(ctx)
		console.Item("Gateway", console.Bool(reachable))
		ok = ok && reachable
	}
	if target == "internet" || target == "all" {
		reachable := cmdCtx.Service.ProbeInternet(ctx)
		console.Item("Internet", console.Bool(reachable))
		ok = ok && reachable
	}
	if !ok {
		return 1
	}
	return 0
}
