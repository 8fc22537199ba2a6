// Where: cli/internal/app/status.go
// What: status command (bootstrap plus reachability).
// Why: Show what the desktop app showed on start: account, session, connectivity.
package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

// statusView is the data handed to --format templates.
type statusView struct {
	Username      string
	HasCredential bool
	Session       *portal.SessionParameters
	Captive       bool
	Gateway       bool
	Internet      bool
	Error         string
}

func runStatus(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	ctx, cancel := cmdCtx.withTimeout()
	defer cancel()

	view := statusView{}
	state, bootErr := cmdCtx.Service.Bootstrap(ctx, cmdCtx.DataDir)
	if bootErr == nil {
		view.Captive = true
		view.Session = state.Session
		if state.Credential != nil {
			view.HasCredential = true
			view.Username = state.Credential.Username
		}
	} else {
		view.Error = bootErr.Error()
	}
	view.Gateway = cmdCtx.Service.ProbeGateway(ctx)
	view.Internet = cmdCtx.Service.ProbeInternet(ctx)

	if format := strings.TrimSpace(cli.Status.Format); format != "" {
		rendered, err := renderStatus(format, view)
		if err != nil {
			return exitWithError(out, err)
		}
		fmt.Fprintln(out, rendered)
		return statusExitCode(bootErr)
	}

	console := cmdCtx.Console
	if bootErr == nil {
		console.Header("📡", "Portal session")
		console.Item("Client IP", view.Session.ClientIP)
		console.Item("Client MAC", view.Session.ClientMAC)
		console.Item("Gateway IP", view.Session.GatewayIP)
		console.Item("Gateway name", view.Session.GatewayName)
		console.BlockStart("🔑", "Account")
		if view.HasCredential {
			console.Item("Username", view.Username)
		} else {
			console.ItemPlain("not saved (run `xzmu save`)")
		}
	} else if errors.Is(bootErr, portal.ErrNotCaptive) {
		console.Header("📡", "Portal session")
		console.ItemPlain("no captive portal detected")
	} else {
		console.Warn(view.Error)
	}

	console.BlockStart("🌐", "Connectivity")
	console.Item("Gateway", console.Bool(view.Gateway))
	console.Item("Internet", console.Bool(view.Internet))

	return statusExitCode(bootErr)
}

// statusExitCode treats "not behind the portal" as a valid status.
func statusExitCode(bootErr error) int {
	if bootErr == nil || errors.Is(bootErr, portal.ErrNotCaptive) {
		return 0
	}
	return 1
}

func renderStatus(format string, view statusView) (string, error) {
	tmpl, err := template.New("status").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return "", fmt.Errorf("parse --format: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render --format: %w", err)
	}
	return buf.String(), nil
}
