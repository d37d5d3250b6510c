package infra

import (
	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/fetch"
)

func FetchClient(conf *appconfig.Config) *fetch.Client {
	return fetch.New(fetch.Options{
		Timeout:  conf.FetchTimeout,
		CacheDir: conf.FetchCacheDir,
		CacheTTL: conf.FetchCacheTTL,
	})
}
