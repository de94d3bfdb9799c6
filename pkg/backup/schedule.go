package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/stack"
	"github.com/RunClawd/runclawd/pkg/system"
)

// Marker tags the crontab line owned by this tool. Re-running the
// scheduler replaces lines carrying the marker instead of stacking
// duplicates.
const Marker = "# runclawd-backup"

// retentionDays is interpolated into a shell command line, so it is
// restricted to plain digits rather than coerced.
var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// shellQuote single-quotes a path for the cron command line. Paths with
// spaces or shell metacharacters must survive the shell intact.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ScheduleOptions describes the recurring backup job to install.
type ScheduleOptions struct {
	ProjectDir    string
	CronExpr      string
	RetentionDays string
	Volume        string
	BackupDir     string
}

// Scheduler installs the recurring backup job into the invoking user's
// crontab.
type Scheduler struct {
	runner     system.Runner
	has        func(string) bool
	executable func() (string, error)
}

func NewScheduler(runner system.Runner) *Scheduler {
	return &Scheduler{
		runner:     runner,
		has:        system.HasCommand,
		executable: os.Executable,
	}
}

// Install validates the schedule and writes a single marked crontab
// line that runs the backup command, which archives the volume and then
// prunes expired archives. Existing unrelated crontab entries are
// preserved.
func (s *Scheduler) Install(ctx context.Context, opts ScheduleOptions) error {
	if !s.has("crontab") {
		return fmt.Errorf("%w: crontab is not installed", ErrPrecondition)
	}
	if _, err := os.Stat(opts.ProjectDir); err != nil {
		return fmt.Errorf("%w: project dir %s does not exist", ErrPrecondition, opts.ProjectDir)
	}
	composePath := filepath.Join(opts.ProjectDir, stack.BaseComposeFile)
	if _, err := os.Stat(composePath); err != nil {
		return fmt.Errorf("%w: %s not found in %s", ErrPrecondition, stack.BaseComposeFile, opts.ProjectDir)
	}
	if !digitsOnly.MatchString(opts.RetentionDays) {
		return fmt.Errorf("%w: retention days %q is not a whole number", ErrPrecondition, opts.RetentionDays)
	}
	if _, err := cron.ParseStandard(opts.CronExpr); err != nil {
		return fmt.Errorf("%w: invalid cron expression %q: %v", ErrPrecondition, opts.CronExpr, err)
	}

	bin, err := s.executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	entry := fmt.Sprintf("%s cd %s && %s backup --volume %s --backup-dir %s --retention-days %s %s",
		opts.CronExpr, shellQuote(opts.ProjectDir), shellQuote(bin),
		opts.Volume, shellQuote(opts.BackupDir), opts.RetentionDays, Marker)

	// A missing crontab exits non-zero; that just means an empty table.
	current, err := s.runner.Output(ctx, system.Command{Name: "crontab", Args: []string{"-l"}})
	if err != nil {
		current = ""
	}

	var kept []string
	for _, line := range strings.Split(current, "\n") {
		if strings.Contains(line, Marker) || strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	kept = append(kept, entry)
	table := strings.Join(kept, "\n") + "\n"

	err = s.runner.Run(ctx, system.Command{
		Name:  "crontab",
		Args:  []string{"-"},
		Stdin: table,
	})
	if err != nil {
		return fmt.Errorf("failed to install crontab entry: %w", err)
	}

	logger := log.WithComponent("schedule")
	logger.Info().
		Str("schedule", opts.CronExpr).
		Str("retention_days", opts.RetentionDays).
		Msg("recurring backup installed")
	return nil
}
