package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"
)

// envelope is the on-disk cache record for one fetched document.
type envelope struct {
	URL       string    `msgpack:"url"`
	FetchedAt time.Time `msgpack:"fetched_at"`
	Body      []byte    `msgpack:"body"`
}

// diskCache persists fetched documents across builds. Entries are keyed by
// a hash of the URL; the URL inside the envelope guards against collisions.
type diskCache struct {
	dir string
	ttl time.Duration
}

func newDiskCache(dir string, ttl time.Duration) *diskCache {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("failed to create fetch cache dir; disk cache disabled")
		return nil
	}
	return &diskCache{
		dir: dir,
		ttl: ttl,
	}
}

func (c *diskCache) path(url string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.bin", xxh3.HashString(url)))
}

func (c *diskCache) get(url string, now time.Time) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	b, err := os.ReadFile(c.path(url))
	if err != nil {
		return nil, false
	}

	var env envelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		log.Debug().Err(err).Str("url", url).Msg("corrupt fetch cache entry; refetching")
		return nil, false
	}
	if env.URL != url {
		return nil, false
	}
	if c.ttl > 0 && now.Sub(env.FetchedAt) > c.ttl {
		return nil, false
	}
	return env.Body, true
}

func (c *diskCache) put(url string, body []byte, now time.Time) {
	if c == nil {
		return
	}

	b, err := msgpack.Marshal(envelope{
		URL:       url,
		FetchedAt: now,
		Body:      body,
	})
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to encode fetch cache entry")
		return
	}
	if err := os.WriteFile(c.path(url), b, 0o644); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to write fetch cache entry")
	}
}
