// Where: cli/internal/infra/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.xzmu/config.yaml consistently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/envutil"
	"github.com/poruru/xzmu-autologin/cli/internal/infra/fileops"
	"github.com/poruru/xzmu-autologin/cli/internal/meta"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
	"gopkg.in/yaml.v3"
)

// Host env suffixes, combined with the brand prefix (XZMU_...).
const (
	HostSuffixConfigPath = "CONFIG_PATH"
	HostSuffixConfigHome = "CONFIG_HOME"
	HostSuffixDataDir    = "DATA_DIR"
)

// GlobalConfig represents the ~/.xzmu/config.yaml configuration.
type GlobalConfig struct {
	Version   int             `yaml:"version"`
	DataDir   string          `yaml:"data_dir,omitempty"`
	Endpoints EndpointsConfig `yaml:"endpoints,omitempty"`
	Timeouts  TimeoutsConfig  `yaml:"timeouts,omitempty"`
}

// EndpointsConfig overrides the provider addresses. Empty fields keep the defaults.
type EndpointsConfig struct {
	PortalProbeURL   string `yaml:"portal_probe_url,omitempty"`
	RedirectMarker   string `yaml:"redirect_marker,omitempty"`
	LoginURL         string `yaml:"login_url,omitempty"`
	Referer          string `yaml:"referer,omitempty"`
	GatewayProbeURL  string `yaml:"gateway_probe_url,omitempty"`
	InternetProbeURL string `yaml:"internet_probe_url,omitempty"`
	InterceptMarker  string `yaml:"intercept_marker,omitempty"`
	UserAgent        string `yaml:"user_agent,omitempty"`
}

// TimeoutsConfig holds Go duration strings, e.g. "2s".
type TimeoutsConfig struct {
	Probe        string `yaml:"probe,omitempty"`
	Reachability string `yaml:"reachability,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{Version: 1}
}

// GlobalConfigPath returns the path to the global config file.
// Respects brand-specific CONFIG_PATH and CONFIG_HOME environment variables.
func GlobalConfigPath() (string, error) {
	if override := envutil.GetHostEnv(HostSuffixConfigPath); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := envutil.GetHostEnv(HostSuffixConfigHome); override != "" {
		return filepath.Join(override, meta.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), nil
}

// EnsureGlobalConfig creates the global config file if it doesn't exist.
func EnsureGlobalConfig(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return SaveGlobalConfig(path, DefaultGlobalConfig())
		}
		return fmt.Errorf("stat global config: %w", err)
	}
	return nil
}

// LoadGlobalConfig reads, validates and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("read global config: %w", err)
	}
	if strings.TrimSpace(string(payload)) == "" {
		return DefaultGlobalConfig(), nil
	}
	if err := validateConfig(payload); err != nil {
		return GlobalConfig{}, fmt.Errorf("validate global config %s: %w", path, err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("decode global config: %w", err)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode global config: %w", err)
	}
	if err := fileops.WriteFileAtomic(path, payload, 0o600); err != nil {
		return fmt.Errorf("write global config: %w", err)
	}
	return nil
}

// ResolveDataDir picks the credential directory.
// Priority: explicit flag, XZMU_DATA_DIR, data_dir in config, ~/.xzmu.
func ResolveDataDir(flagValue string, cfg GlobalConfig) (string, error) {
	for _, candidate := range []string{flagValue, envutil.GetHostEnv(HostSuffixDataDir), cfg.DataDir} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		return expandHome(candidate)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ClientOptions converts the config into portal client options.
func (cfg GlobalConfig) ClientOptions() (portal.Options, error) {
	probe, err := parseTimeout("probe", cfg.Timeouts.Probe, portal.DefaultProbeTimeout)
	if err != nil {
		return portal.Options{}, err
	}
	reach, err := parseTimeout("reachability", cfg.Timeouts.Reachability, portal.DefaultReachabilityTimeout)
	if err != nil {
		return portal.Options{}, err
	}
	ep := cfg.Endpoints
	return portal.Options{
		Endpoints: portal.Endpoints{
			PortalProbeURL:   ep.PortalProbeURL,
			RedirectMarker:   ep.RedirectMarker,
			LoginURL:         ep.LoginURL,
			Referer:          ep.Referer,
			GatewayProbeURL:  ep.GatewayProbeURL,
			InternetProbeURL: ep.InternetProbeURL,
			InterceptMarker:  ep.InterceptMarker,
			UserAgent:        ep.UserAgent,
		},
		ProbeTimeout:        probe,
		ReachabilityTimeout: reach,
	}, nil
}

func parseTimeout(name, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("timeouts.%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeouts.%s must be positive", name)
	}
	return d, nil
}
