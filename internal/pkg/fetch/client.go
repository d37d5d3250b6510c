// Package fetch pulls remote dataset documents over HTTP, once per URL per
// build. A small in-memory layer absorbs repeated lookups inside one run and
// an optional on-disk cache carries documents across runs, so iterating on
// the pipeline locally does not hammer the upstreams.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/tataru-works/xivmill/internal/pkg/bininfo"
	"github.com/tataru-works/xivmill/internal/pkg/exd"
)

type Options struct {
	// Timeout bounds a single request. There are no retries: a document
	// that cannot be fetched in one attempt is reported as an error and
	// the caller decides how soft the failure is.
	Timeout time.Duration

	// CacheDir enables the on-disk cache when non-empty.
	CacheDir string

	// CacheTTL is how long a disk cache entry stays fresh. Zero keeps
	// entries forever.
	CacheTTL time.Duration
}

type Client struct {
	http *http.Client
	mem  *cache.Cache
	disk *diskCache
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		mem:  cache.New(cache.NoExpiration, 0),
		disk: newDiskCache(opts.CacheDir, opts.CacheTTL),
	}
}

// Bytes fetches the document at url, consulting the caches first.
func (c *Client) Bytes(ctx context.Context, url string) ([]byte, error) {
	if v, ok := c.mem.Get(url); ok {
		return v.([]byte), nil
	}

	now := time.Now()
	if b, ok := c.disk.get(url, now); ok {
		c.mem.Set(url, b, cache.NoExpiration)
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s", url)
	}
	req.Header.Set("User-Agent", "xivmill/"+bininfo.Version)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read body of %s", url)
	}

	c.mem.Set(url, b, cache.NoExpiration)
	c.disk.put(url, b, now)

	return b, nil
}

// JSON fetches url and parses it as a JSON document.
func (c *Client) JSON(ctx context.Context, url string) (gjson.Result, error) {
	b, err := c.Bytes(ctx, url)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, errors.Errorf("document at %s is not valid JSON", url)
	}
	return gjson.ParseBytes(b), nil
}

// Sheet fetches url and parses it as a game data sheet dump. The remote CN
// sheets use the same dump layout as the local ones.
func (c *Client) Sheet(ctx context.Context, url, name string) (*exd.Sheet, error) {
	b, err := c.Bytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return exd.Read(bytes.NewReader(b), name)
}
