package main

import (
	"github.com/spf13/cobra"

	"github.com/RunClawd/runclawd/pkg/backup"
	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/system"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the persistent volume from an archive",
	Long: `Restore replaces the persistent volume's contents with an archive
produced by the backup command.

By default the volume is wiped before extraction, after an interactive
confirmation. --no-wipe layers the archive over the current contents;
--force skips the confirmation. Stop the stack before restoring so no
service writes to the volume mid-extract.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("backup-file")
		volume, _ := cmd.Flags().GetString("volume")
		noWipe, _ := cmd.Flags().GetBool("no-wipe")
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := config.Load(false)
		if err != nil {
			return err
		}
		if volume == "" {
			volume = cfg.Volume
		}

		engine := backup.NewEngine(system.NewExecRunner())
		return engine.Restore(cmd.Context(), file, volume, !noWipe, force)
	},
}

func init() {
	restoreCmd.Flags().String("backup-file", "", "Archive to restore from")
	restoreCmd.Flags().String("volume", "", "Volume to restore into (default from config)")
	restoreCmd.Flags().Bool("no-wipe", false, "Extract over the current contents instead of wiping first")
	restoreCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	_ = restoreCmd.MarkFlagRequired("backup-file")
}
