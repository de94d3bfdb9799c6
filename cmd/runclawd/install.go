package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/extract"
	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/report"
	"github.com/RunClawd/runclawd/pkg/source"
	"github.com/RunClawd/runclawd/pkg/stack"
	"github.com/RunClawd/runclawd/pkg/system"
	"github.com/RunClawd/runclawd/pkg/types"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and start the gateway stack",
	Long: `Install prepares the host, acquires the deployable tree, starts the
container stack and waits for its credentials.

With CLOUDFLARE_TUNNEL_TOKEN set the stack runs behind a pre-registered
tunnel; otherwise it uses an ephemeral quick tunnel whose public URL is
read from the tunnel's logs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")
		build, _ := cmd.Flags().GetBool("build")

		cfg, err := config.Load(local)
		if err != nil {
			return err
		}
		cfg.Build = build

		ctx := cmd.Context()
		runner := system.NewExecRunner()
		logger := log.WithComponent("install")

		mode := cfg.Mode()
		logger.Info().
			Str("mode", string(mode)).
			Str("dir", cfg.InstallDir).
			Msg("starting install")

		installer := system.NewInstaller(runner)
		if err := installer.EnsureDependencies(ctx); err != nil {
			return err
		}

		if cfg.Local {
			if err := source.VerifyLocal(cfg.InstallDir, stack.BaseComposeFile); err != nil {
				return err
			}
		} else {
			acquirer := source.NewAcquirer(runner, cfg.Origin)
			if err := acquirer.Ensure(ctx, cfg.InstallDir); err != nil {
				return err
			}
		}

		if mode == types.ModeTokenTunnel {
			path, err := stack.WriteTunnelConfig(cfg.InstallDir, cfg.Hostname)
			if err != nil {
				return err
			}
			logger.Debug().Str("path", path).Msg("tunnel config written")
		}

		controller := stack.NewController(runner, cfg)
		if err := controller.BringUp(ctx, cfg.Build); err != nil {
			return err
		}

		extractor := extract.New(controller, cfg)
		creds, err := extractor.Run(ctx)
		if err != nil {
			return fmt.Errorf("stack is up but credentials never appeared: %w", err)
		}

		report.Render(os.Stdout, mode, creds)
		return nil
	},
}

func init() {
	installCmd.Flags().Bool("local", false, "Operate on the current directory (or RUNCLAWD_DIR) without cloning or pulling")
	installCmd.Flags().Bool("build", false, "Rebuild the gateway image before starting the stack")
}
