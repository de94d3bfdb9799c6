package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RunClawd/runclawd/pkg/types"
)

const (
	// DefaultInstallDir is where the deployable tree is cloned unless
	// RUNCLAWD_DIR overrides it.
	DefaultInstallDir = "/opt/runclawd"

	// DefaultVolume is the named docker volume holding persistent state.
	DefaultVolume = "clawd-data"

	// DefaultBackupDir is where volume archives are written.
	DefaultBackupDir = "/var/backups/runclawd"

	// DefaultOrigin is the git origin for fresh clones.
	DefaultOrigin = "https://github.com/RunClawd/runclawd.git"

	// ConfigFileName is the optional per-install override file looked up
	// in the install directory.
	ConfigFileName = "runclawd.yaml"
)

// Environment variable names honored by Load.
const (
	EnvInstallDir  = "RUNCLAWD_DIR"
	EnvTunnelToken = "CLOUDFLARE_TUNNEL_TOKEN"
	EnvHostname    = "RUNCLAWD_HOSTNAME"
)

// Config carries every mode- and environment-derived setting, threaded
// explicitly through the components instead of ambient env lookups.
type Config struct {
	// InstallDir is the deployable tree on the host.
	InstallDir string

	// Local operates against an existing directory instead of cloning.
	Local bool

	// Build rebuilds the gateway image before bring-up.
	Build bool

	// TunnelToken is the pre-registered tunnel credential. Empty means
	// quick-tunnel mode.
	TunnelToken string

	// Hostname is the pre-known public hostname in token-tunnel mode.
	Hostname string

	// Origin is the expected git origin of the install dir.
	Origin string

	Volume    string
	BackupDir string

	// Services names the compose services for each stack role.
	Services types.ServiceNames

	// PollInterval and PollDeadline bound the credential extractor.
	PollInterval time.Duration
	PollDeadline time.Duration

	// LogTail is how many trailing log lines each poll reads.
	LogTail int
}

// duration parses yaml values like "100ms" or "5s". yaml.v3 has no
// built-in handling for time.Duration.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

// fileOverrides is the subset of settings an install may pin in
// runclawd.yaml. Zero values leave the corresponding setting alone.
type fileOverrides struct {
	Volume       string             `yaml:"volume"`
	BackupDir    string             `yaml:"backupDir"`
	Services     types.ServiceNames `yaml:"services"`
	PollInterval duration           `yaml:"pollInterval"`
	PollDeadline duration           `yaml:"pollDeadline"`
	LogTail      int                `yaml:"logTail"`
}

// Default returns the built-in configuration, before env and file
// overrides.
func Default() *Config {
	return &Config{
		InstallDir:   DefaultInstallDir,
		Origin:       DefaultOrigin,
		Volume:       DefaultVolume,
		BackupDir:    DefaultBackupDir,
		Services:     types.DefaultServiceNames(),
		PollInterval: 2 * time.Second,
		PollDeadline: 300 * time.Second,
		LogTail:      500,
	}
}

// Load builds the configuration from defaults, the process environment,
// and the optional runclawd.yaml in the install directory, in that order.
// Local mode operates in place: unless RUNCLAWD_DIR overrides it, the
// install dir is the current working directory rather than the default
// install location.
func Load(local bool) (*Config, error) {
	return load(os.Getenv, os.Getwd, local)
}

func load(getenv func(string) string, getwd func() (string, error), local bool) (*Config, error) {
	cfg := Default()
	cfg.Local = local

	if dir := getenv(EnvInstallDir); dir != "" {
		cfg.InstallDir = dir
	} else if local {
		dir, err := getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg.InstallDir = dir
	}
	cfg.TunnelToken = getenv(EnvTunnelToken)
	cfg.Hostname = getenv(EnvHostname)

	if err := cfg.applyFile(filepath.Join(cfg.InstallDir, ConfigFileName)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile merges overrides from the given yaml file. A missing file is
// not an error; a malformed one is.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var ov fileOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if ov.Volume != "" {
		c.Volume = ov.Volume
	}
	if ov.BackupDir != "" {
		c.BackupDir = ov.BackupDir
	}
	if ov.Services.Gateway != "" {
		c.Services.Gateway = ov.Services.Gateway
	}
	if ov.Services.Terminal != "" {
		c.Services.Terminal = ov.Services.Terminal
	}
	if ov.Services.Tunnel != "" {
		c.Services.Tunnel = ov.Services.Tunnel
	}
	if ov.PollInterval > 0 {
		c.PollInterval = time.Duration(ov.PollInterval)
	}
	if ov.PollDeadline > 0 {
		c.PollDeadline = time.Duration(ov.PollDeadline)
	}
	if ov.LogTail > 0 {
		c.LogTail = ov.LogTail
	}
	return nil
}

// Mode derives the deployment mode from token presence.
func (c *Config) Mode() types.DeployMode {
	if c.TunnelToken != "" {
		return types.ModeTokenTunnel
	}
	return types.ModeQuickTunnel
}

// PublicURL returns the up-front derivable public URL, which exists only
// in token-tunnel mode with a configured hostname.
func (c *Config) PublicURL() string {
	if c.Mode() == types.ModeTokenTunnel && c.Hostname != "" {
		return "https://" + c.Hostname
	}
	return ""
}
