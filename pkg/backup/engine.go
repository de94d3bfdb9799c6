package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/system"
)

var (
	// ErrPrecondition is returned when a required tool, file, volume or
	// argument is missing. Always fatal, never retried.
	ErrPrecondition = errors.New("precondition failed")

	// ErrDeclined is returned when the operator does not confirm a
	// destructive restore.
	ErrDeclined = errors.New("restore declined")
)

// helperImage is the throwaway image used for archive and wipe
// containers.
const helperImage = "alpine:3.20"

// Engine snapshots and restores the named persistent volume using
// ephemeral containers, so the volume's contents never need to be
// readable from the host directly.
type Engine struct {
	runner  system.Runner
	has     func(string) bool
	confirm func(question string) (bool, error)
}

// NewEngine creates a backup engine with an interactive confirmation
// prompt.
func NewEngine(runner system.Runner) *Engine {
	return &Engine{
		runner: runner,
		has:    system.HasCommand,
		confirm: func(question string) (bool, error) {
			return Confirm(os.Stdin, os.Stderr, question)
		},
	}
}

// DefaultArchiveName builds the canonical archive file name for a
// volume snapshot taken at t.
func DefaultArchiveName(volume string, t time.Time) string {
	return fmt.Sprintf("%s-%s.tgz", volume, t.Format("20060102-150405"))
}

// Backup archives the volume's contents into dir and returns the
// absolute archive path. The volume is mounted read-only; the archive
// is a gzip-compressed tar of the volume root.
func (e *Engine) Backup(ctx context.Context, volume, dir, name string) (string, error) {
	logger := log.WithVolume(volume)

	if err := e.checkRuntime(ctx, volume); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup dir %s: %w", dir, err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve backup dir: %w", err)
	}

	if name == "" {
		name = DefaultArchiveName(volume, time.Now())
	}

	logger.Info().Str("archive", name).Msg("archiving volume")
	err = e.runner.Run(ctx, system.Command{
		Name: "docker",
		Args: []string{
			"run", "--rm",
			"--name", helperName("backup"),
			"-v", volume + ":/data:ro",
			"-v", absDir + ":/backup",
			helperImage,
			"tar", "czf", "/backup/" + name, "-C", "/data", ".",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive volume %s: %w", volume, err)
	}

	path := filepath.Join(absDir, name)
	logger.Info().Str("path", path).Msg("backup complete")
	return path, nil
}

// Restore replaces the volume's contents from an archive. Unless force
// is set, a wiping restore asks for explicit confirmation first. There
// is no rollback: if extraction fails after the wipe, the volume is
// left empty.
func (e *Engine) Restore(ctx context.Context, file, volume string, wipeFirst, force bool) error {
	logger := log.WithVolume(volume)

	// All preconditions are checked before any container runs.
	if file == "" {
		return fmt.Errorf("%w: no backup file given", ErrPrecondition)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve backup file: %w", err)
	}
	if _, err := os.Stat(absFile); err != nil {
		return fmt.Errorf("%w: backup file %s does not exist", ErrPrecondition, absFile)
	}
	if err := e.checkRuntime(ctx, volume); err != nil {
		return err
	}

	if wipeFirst && !force {
		ok, err := e.confirm(fmt.Sprintf(
			"Restoring will WIPE all data in volume %q and replace it with %s. Continue?",
			volume, filepath.Base(absFile)))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return ErrDeclined
		}
	}

	if wipeFirst {
		logger.Info().Msg("wiping volume contents")
		// Dotfiles included; individual removal failures are swallowed
		// so a partially empty volume cannot block the extract.
		err := e.runner.Run(ctx, system.Command{
			Name: "docker",
			Args: []string{
				"run", "--rm",
				"--name", helperName("wipe"),
				"-v", volume + ":/data",
				helperImage,
				"sh", "-c", "rm -rf /data/* /data/.[!.]* /data/..?* 2>/dev/null || true",
			},
		})
		if err != nil {
			return fmt.Errorf("failed to wipe volume %s: %w", volume, err)
		}
	}

	logger.Info().Str("archive", absFile).Msg("restoring volume")
	err = e.runner.Run(ctx, system.Command{
		Name: "docker",
		Args: []string{
			"run", "--rm",
			"--name", helperName("restore"),
			"-v", volume + ":/data",
			"-v", filepath.Dir(absFile) + ":/backup:ro",
			helperImage,
			"tar", "xzf", "/backup/" + filepath.Base(absFile), "-C", "/data",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to restore volume %s: %w", volume, err)
	}

	logger.Info().Msg("restore complete")
	return nil
}

// checkRuntime verifies docker is installed and the named volume
// exists.
func (e *Engine) checkRuntime(ctx context.Context, volume string) error {
	if !e.has("docker") {
		return fmt.Errorf("%w: docker is not installed", ErrPrecondition)
	}
	if _, err := e.runner.Output(ctx, system.Command{
		Name: "docker",
		Args: []string{"volume", "inspect", volume},
	}); err != nil {
		return fmt.Errorf("%w: volume %s does not exist", ErrPrecondition, volume)
	}
	return nil
}

func helperName(op string) string {
	return "runclawd-" + op + "-" + uuid.NewString()[:8]
}
