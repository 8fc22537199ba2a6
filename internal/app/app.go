// Where: cli/internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher for the portal operations.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/interaction"
	"github.com/poruru/xzmu-autologin/cli/internal/meta"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap the store, gateway factory and prompter for fakes.
type Dependencies struct {
	Out        io.Writer
	ErrOut     io.Writer
	In         *os.File
	Prompter   interaction.Prompter
	Store      portal.CredentialStore
	NewGateway func(opts portal.Options) portal.Gateway
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	DataDir    string `name:"data-dir" help:"Directory holding the saved credential"`
	ConfigPath string `name:"config" help:"Path to config.yaml"`
	EnvFile    string `name:"env-file" help:"Path to .env file"`
	Verbose    bool   `short:"v" help:"Log portal requests to stderr"`

	Status  StatusCmd  `cmd:"" help:"Detect the portal session and connectivity"`
	Save    SaveCmd    `cmd:"" help:"Save the portal account"`
	Login   LoginCmd   `cmd:"" help:"Log in to the campus portal"`
	Probe   ProbeCmd   `cmd:"" help:"Check gateway and internet reachability"`
	Config  ConfigCmd  `cmd:"" help:"Inspect configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	StatusCmd struct {
		Format string `short:"f" help:"Render the state with a Go template (sprig functions available)"`
	}
	SaveCmd struct {
		Username string `short:"u" help:"Portal account (student id)"`
		Password string `short:"p" help:"Portal password"`
	}
	LoginCmd struct {
		Username string `short:"u" help:"Override the saved account"`
		Password string `short:"p" help:"Override the saved password"`
		Save     bool   `help:"Save the credential used for this login"`
		Raw      bool   `help:"Print the raw portal reply"`
	}
	ProbeCmd struct {
		Target string `arg:"" optional:"" enum:"gateway,internet,all" default:"all" help:"gateway, internet or all"`
	}
	ConfigCmd struct {
		Path ConfigPathCmd `cmd:"" help:"Print the config file path"`
		Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
	}
	ConfigPathCmd struct{}
	ConfigShowCmd struct{}
	VersionCmd    struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	deps.Out = out
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}

	// No command means status, the equivalent of opening the app.
	if commandName(args) == "" {
		args = append(append([]string(nil), args...), "status")
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Campus captive-portal auto-login."),
		kong.Writers(out, out),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(args, err, out)
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

type prefixHandler struct {
	prefix  string
	handler commandHandler
}

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"status":      runStatus,
		"save":        runSave,
		"login":       runLogin,
		"config path": runConfigPath,
		"config show": runConfigShow,
		"version":     func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	prefixHandlers := []prefixHandler{
		{prefix: "probe", handler: runProbe},
	}

	for _, entry := range prefixHandlers {
		if strings.HasPrefix(command, entry.prefix) {
			return entry.handler(cli, deps, out), true
		}
	}

	return 1, false
}

// commandName extracts the first non-flag argument from the command line,
// which represents the command name. Recognizes and skips known flag pairs.
func commandName(args []string) string {
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			switch arg {
			case "--data-dir", "--config", "--env-file":
				skipNext = true
			}
			continue
		}
		return arg
	}
	return ""
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(args []string, err error, out io.Writer) int {
	errStr := err.Error()
	switch cmd := commandName(args); {
	case cmd == "probe" && strings.Contains(errStr, "must be one of"):
		return exitWithSuggestion(out, "Unknown probe target.",
			[]string{"xzmu probe gateway", "xzmu probe internet", "xzmu probe"})
	case cmd == "config" && strings.Contains(errStr, "expected one of"):
		return exitWithSuggestion(out, "Config subcommand required.",
			[]string{"xzmu config path", "xzmu config show"})
	}
	return exitWithError(out, err)
}
