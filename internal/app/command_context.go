// Where: cli/internal/app/command_context.go
// What: Shared context resolution for CLI commands.
// Why: Resolve config, data dir, logger and portal service once per command.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/config"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/credential"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/logging"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/ui"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

type commandContext struct {
	ConfigPath string
	Config     config.GlobalConfig
	DataDir    string
	Options    portal.Options
	Service    *portal.Service
	Logger     *zap.Logger
	Console    *ui.Console
}

func resolveConfigPath(cli CLI) (string, error) {
	if path := strings.TrimSpace(cli.ConfigPath); path != "" {
		return path, nil
	}
	return config.GlobalConfigPath()
}

func resolveCommandContext(cli CLI, deps Dependencies, out io.Writer) (commandContext, error) {
	configPath, err := resolveConfigPath(cli)
	if err != nil {
		return commandContext{}, err
	}
	if err := config.EnsureGlobalConfig(configPath); err != nil {
		return commandContext{}, err
	}
	cfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		return commandContext{}, err
	}

	dataDir, err := config.ResolveDataDir(cli.DataDir, cfg)
	if err != nil {
		return commandContext{}, err
	}

	opts, err := cfg.ClientOptions()
	if err != nil {
		return commandContext{}, fmt.Errorf("config %s: %w", configPath, err)
	}
	logger := logging.New(deps.ErrOut, cli.Verbose)
	opts.Logger = logger

	store := deps.Store
	if store == nil {
		store = credential.NewFileStore()
	}
	newGateway := deps.NewGateway
	if newGateway == nil {
		newGateway = defaultGateway
	}

	logger.Debug("command context resolved",
		zap.String("config", configPath),
		zap.String("data_dir", dataDir))

	return commandContext{
		ConfigPath: configPath,
		Config:     cfg,
		DataDir:    dataDir,
		Options:    opts,
		Service:    portal.NewService(store, newGateway(opts)),
		Logger:     logger,
		Console:    ui.New(out),
	}, nil
}

func defaultGateway(opts portal.Options) portal.Gateway {
	return portal.NewClient(opts)
}

// withTimeout bounds a whole command. Each request carries its own
// shorter client timeout; this only guards the sum.
func (c commandContext) withTimeout() (context.Context, context.CancelFunc) {
	total := 2*c.Options.ProbeTimeout + 2*c.Options.ReachabilityTimeout
	if total <= 0 {
		total = 2*portal.DefaultProbeTimeout + 2*portal.DefaultReachabilityTimeout
	}
	return context.WithTimeout(context.Background(), total)
}
