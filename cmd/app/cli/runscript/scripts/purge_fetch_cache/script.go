package script_purge_fetch_cache

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func run(deps CommandDeps) error {
	dir := deps.Config.FetchCacheDir
	if dir == "" {
		log.Info().Msg("disk fetch cache is disabled; nothing to purge")
		return nil
	}

	// Only the cache's own entry files are removed, never the directory:
	// the configured path may be shared with other tooling.
	entries, err := filepath.Glob(filepath.Join(dir, "*.bin"))
	if err != nil {
		return errors.Wrap(err, "failed to list fetch cache entries")
	}

	for _, entry := range entries {
		if err := os.Remove(entry); err != nil {
			return errors.Wrapf(err, "failed to remove cache entry %s", entry)
		}
	}

	log.Info().Int("entries", len(entries)).Str("dir", dir).Msg("purged fetch cache")

	return nil
}
