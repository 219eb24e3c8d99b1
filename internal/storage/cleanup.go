package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reviewhub/reviewhub/pkg/logger"
)

// staleAge is how long a staged upload may sit before it is considered
// orphaned. A file only stays in staging this long if the request that
// uploaded it died before promotion.
const staleAge = 24 * time.Hour

// CleanupStale removes staged uploads older than maxAge and returns how many
// were deleted.
func (s *LocalStore) CleanupStale(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.tempDir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// StartCleanupScheduler runs an hourly purge of orphaned staged uploads.
// The returned cron should be stopped on shutdown.
func StartCleanupScheduler(store *LocalStore) *cron.Cron {
	c := cron.New()
	c.AddFunc("@hourly", func() {
		removed, err := store.CleanupStale(staleAge)
		if err != nil {
			logger.Warn().Err(err).Msg("staged upload cleanup failed")
			return
		}
		if removed > 0 {
			logger.Info().Int("removed", removed).Msg("purged orphaned staged uploads")
		}
	})
	c.Start()
	return c
}
