package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RunClawd/runclawd/pkg/log"
)

// Prune deletes archives for the given volume in dir whose modification
// time is older than retentionDays. Only files matching the canonical
// <volume>-*.tgz pattern are considered; anything else in the directory
// is left alone. Returns the paths that were removed.
//
// The window must be positive. A retention setting of zero means "keep
// everything" and is handled by callers not invoking Prune at all; a
// zero window here would match every archive.
func Prune(dir, volume string, retentionDays int) ([]string, error) {
	if retentionDays <= 0 {
		return nil, fmt.Errorf("%w: retention days must be positive", ErrPrecondition)
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return pruneBefore(dir, volume, cutoff)
}

func pruneBefore(dir, volume string, cutoff time.Time) ([]string, error) {
	logger := log.WithVolume(volume)

	matches, err := filepath.Glob(filepath.Join(dir, volume+"-*.tgz"))
	if err != nil {
		return nil, fmt.Errorf("failed to list archives in %s: %w", dir, err)
	}

	var removed []string
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			// Raced with another prune; nothing to do.
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove archive %s: %w", path, err)
		}
		logger.Debug().Str("archive", path).Msg("pruned expired archive")
		removed = append(removed, path)
	}
	return removed, nil
}
