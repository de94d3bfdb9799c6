package stack

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/system"
	"github.com/RunClawd/runclawd/pkg/types"
)

const (
	// BaseComposeFile is the stack definition every mode uses.
	BaseComposeFile = "docker-compose.yml"

	// TokenOverlayFile is layered on top of the base in token-tunnel
	// mode. Later files override earlier keys, so order matters.
	TokenOverlayFile = "docker-compose.tunnel-token.yml"
)

// Controller issues compose operations against the install directory,
// composing the overlay set from the deployment mode.
type Controller struct {
	runner system.Runner
	cfg    *config.Config
}

// NewController creates a stack controller.
func NewController(runner system.Runner, cfg *config.Config) *Controller {
	return &Controller{runner: runner, cfg: cfg}
}

// OverlayArgs returns the -f argument list for the active mode, base
// file first.
func (c *Controller) OverlayArgs() []string {
	args := []string{"-f", BaseComposeFile}
	if c.cfg.Mode() == types.ModeTokenTunnel {
		args = append(args, "-f", TokenOverlayFile)
	}
	return args
}

// composeArgs prefixes the overlay set onto a compose subcommand.
func (c *Controller) composeArgs(sub ...string) []string {
	return append(append([]string{"compose"}, c.OverlayArgs()...), sub...)
}

// env returns the environment handed to every compose call. The token is
// propagated whether set or empty so the overlay interpolates cleanly.
func (c *Controller) env() []string {
	return []string{config.EnvTunnelToken + "=" + c.cfg.TunnelToken}
}

// BringUp starts the stack in detached mode, optionally building the
// gateway image first.
func (c *Controller) BringUp(ctx context.Context, build bool) error {
	logger := log.WithComponent("stack")

	if build {
		logger.Info().Str("service", c.cfg.Services.Gateway).Msg("building image")
		if err := c.runner.Run(ctx, system.Command{
			Name: "docker",
			Args: c.composeArgs("build", c.cfg.Services.Gateway),
			Dir:  c.cfg.InstallDir,
			Env:  c.env(),
		}); err != nil {
			return fmt.Errorf("failed to build %s: %w", c.cfg.Services.Gateway, err)
		}
	}

	logger.Info().Str("mode", string(c.cfg.Mode())).Msg("bringing up stack")
	if err := c.runner.Run(ctx, system.Command{
		Name: "docker",
		Args: c.composeArgs("up", "-d"),
		Dir:  c.cfg.InstallDir,
		Env:  c.env(),
	}); err != nil {
		return fmt.Errorf("failed to bring up stack: %w", err)
	}
	return nil
}

// Down stops and removes the stack's containers. The persistent volume
// is left alone.
func (c *Controller) Down(ctx context.Context) error {
	if err := c.runner.Run(ctx, system.Command{
		Name: "docker",
		Args: c.composeArgs("down"),
		Dir:  c.cfg.InstallDir,
		Env:  c.env(),
	}); err != nil {
		return fmt.Errorf("failed to bring down stack: %w", err)
	}
	return nil
}

// ServiceLogs dumps up to tail trailing log lines of one service,
// uncolored and non-following. A service that does not exist yet yields
// empty output rather than an error; early polls race container
// creation.
func (c *Controller) ServiceLogs(ctx context.Context, service string, tail int) (string, error) {
	out, err := c.runner.Output(ctx, system.Command{
		Name: "docker",
		Args: c.composeArgs("logs", "--no-color", "--tail", strconv.Itoa(tail), service),
		Dir:  c.cfg.InstallDir,
		Env:  c.env(),
	})
	if err != nil {
		if isMissingService(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s logs: %w", service, err)
	}
	return out, nil
}

// TailLines adapts ServiceLogs to the extractor's LogSource capability.
func (c *Controller) TailLines(ctx context.Context, service string, tail int) ([]string, error) {
	out, err := c.ServiceLogs(ctx, service, tail)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n"), nil
}

func isMissingService(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such service") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "no container")
}
