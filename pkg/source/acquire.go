package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/system"
)

// ErrForeignState is returned when the target path exists, is non-empty,
// and is not a checkout of the expected origin. The acquirer refuses to
// guess and never mutates such a directory.
var ErrForeignState = errors.New("target directory is not the expected checkout")

// Acquirer materializes the deployable tree at a target path.
type Acquirer struct {
	runner system.Runner
	origin string
}

// NewAcquirer creates an acquirer for the given git origin.
func NewAcquirer(runner system.Runner, origin string) *Acquirer {
	return &Acquirer{runner: runner, origin: origin}
}

// Ensure brings dir to a current checkout of the origin. Three branches:
// a matching checkout is fetched, pruned, and rebase-pulled; a missing or
// empty dir is cloned fresh; anything else fails with ErrForeignState.
func (a *Acquirer) Ensure(ctx context.Context, dir string) error {
	logger := log.WithComponent("source")

	checkout, err := a.isCheckout(ctx, dir)
	if err != nil {
		return err
	}
	if checkout {
		logger.Info().Str("dir", dir).Msg("updating existing checkout")
		return a.update(ctx, dir)
	}

	empty, err := isMissingOrEmpty(dir)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("%w: %s exists and is not empty", ErrForeignState, dir)
	}

	logger.Info().Str("dir", dir).Str("origin", a.origin).Msg("cloning")
	return a.clone(ctx, dir)
}

// VerifyLocal is the local-mode precondition: the stack definition file
// must already be present in dir. No acquisition happens in local mode.
func VerifyLocal(dir, stackFile string) error {
	path := filepath.Join(dir, stackFile)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s not found in %s (not a runclawd install?)", stackFile, dir)
	}
	return nil
}

// isCheckout reports whether dir is a git checkout of the expected
// origin. A checkout with a different origin is a hard error rather than
// "not a checkout" so the caller never clones over it.
func (a *Acquirer) isCheckout(ctx context.Context, dir string) (bool, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return false, nil
	}

	url, err := a.runner.Output(ctx, system.Command{
		Name: "git",
		Args: []string{"-C", dir, "remote", "get-url", "origin"},
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s has no readable origin", ErrForeignState, dir)
	}
	if normalizeOrigin(url) != normalizeOrigin(a.origin) {
		return false, fmt.Errorf("%w: %s tracks %s", ErrForeignState, dir, strings.TrimSpace(url))
	}
	return true, nil
}

func (a *Acquirer) update(ctx context.Context, dir string) error {
	if err := a.runner.Run(ctx, system.Command{
		Name: "git",
		Args: []string{"-C", dir, "fetch", "--all", "--prune"},
	}); err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	// Rebase conflicts fail here; no auto-resolution.
	if err := a.runner.Run(ctx, system.Command{
		Name: "git",
		Args: []string{"-C", dir, "pull", "--rebase"},
	}); err != nil {
		return fmt.Errorf("failed to rebase onto upstream: %w", err)
	}
	return nil
}

func (a *Acquirer) clone(ctx context.Context, dir string) error {
	if err := a.runner.Run(ctx, system.Command{
		Name: "git",
		Args: []string{"clone", a.origin, dir},
	}); err != nil {
		return fmt.Errorf("failed to clone %s: %w", a.origin, err)
	}
	return nil
}

func isMissingOrEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}

// normalizeOrigin makes https://host/repo, https://host/repo.git and
// trailing-slash variants compare equal.
func normalizeOrigin(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")
	return url
}
