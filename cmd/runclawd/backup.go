package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RunClawd/runclawd/pkg/backup"
	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/system"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Archive the persistent volume",
	Long: `Backup snapshots the persistent volume into a timestamped archive.

With --retention-days set to a positive window, archives older than it
are deleted after the snapshot succeeds; 0 keeps every archive. This is
the command the scheduled crontab entry runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		volume, _ := cmd.Flags().GetString("volume")
		dir, _ := cmd.Flags().GetString("backup-dir")
		name, _ := cmd.Flags().GetString("archive-name")
		retention, _ := cmd.Flags().GetInt("retention-days")

		cfg, err := config.Load(false)
		if err != nil {
			return err
		}
		if volume == "" {
			volume = cfg.Volume
		}
		if dir == "" {
			dir = cfg.BackupDir
		}

		engine := backup.NewEngine(system.NewExecRunner())
		path, err := engine.Backup(cmd.Context(), volume, dir, name)
		if err != nil {
			return err
		}
		fmt.Println(path)

		if retention > 0 {
			if _, err := backup.Prune(dir, volume, retention); err != nil {
				return err
			}
		}
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Install a recurring backup crontab entry",
	Long: `Schedule installs a crontab entry that runs the backup command on
the given cron schedule and prunes archives older than the retention
window. Re-running replaces any entry installed earlier.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir, _ := cmd.Flags().GetString("project-dir")
		expr, _ := cmd.Flags().GetString("schedule")
		retention, _ := cmd.Flags().GetString("retention-days")

		cfg, err := config.Load(false)
		if err != nil {
			return err
		}
		if projectDir == "" {
			projectDir = cfg.InstallDir
		}

		scheduler := backup.NewScheduler(system.NewExecRunner())
		return scheduler.Install(cmd.Context(), backup.ScheduleOptions{
			ProjectDir:    projectDir,
			CronExpr:      expr,
			RetentionDays: retention,
			Volume:        cfg.Volume,
			BackupDir:     cfg.BackupDir,
		})
	},
}

func init() {
	backupCmd.Flags().String("volume", "", "Volume to archive (default from config)")
	backupCmd.Flags().String("backup-dir", "", "Directory to write archives to (default from config)")
	backupCmd.Flags().String("archive-name", "", "Archive file name (default <volume>-<timestamp>.tgz)")
	backupCmd.Flags().Int("retention-days", 0, "Delete archives older than this many days after the snapshot (0 keeps everything)")

	scheduleCmd.Flags().String("project-dir", "", "Install directory the job runs from (default from config)")
	scheduleCmd.Flags().String("schedule", "30 3 * * *", "Five-field cron expression")
	scheduleCmd.Flags().String("retention-days", "14", "Retention window in days for the scheduled job (0 keeps everything)")
}
