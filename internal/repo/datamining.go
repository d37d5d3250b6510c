package repo

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/async"
	"github.com/tataru-works/xivmill/internal/pkg/exd"
	"github.com/tataru-works/xivmill/internal/pkg/fetch"
)

// DataminingSheets is every CN-locale sheet a build consumes. The upstream
// publishes the same dump layout as the local extraction, so these parse
// with the same reader.
var DataminingSheets = []string{
	"ContentFinderCondition",
	"Item",
	"Quest",
}

// Datamining fetches the CN-locale sheets. Like the other remote dataset,
// a sheet that cannot be fetched leaves its locale out of the build rather
// than failing it.
type Datamining struct {
	client *fetch.Client
	base   string
	limit  int

	sheets  map[string]*exd.Sheet
	missing []string
}

func NewDatamining(conf *appconfig.Config, client *fetch.Client) *Datamining {
	return &Datamining{
		client: client,
		base:   conf.DataminingCnBaseURL,
		limit:  conf.FetchConcurrency,
		sheets: make(map[string]*exd.Sheet, len(DataminingSheets)),
	}
}

func (r *Datamining) Load(ctx context.Context) error {
	type fetched struct {
		name  string
		sheet *exd.Sheet
	}

	results, _ := async.Map(DataminingSheets, r.limit, func(name string) (fetched, error) {
		sheet, err := r.client.Sheet(ctx, r.base+name+".csv", name)
		if err != nil {
			log.Warn().
				Err(err).
				Str("evt.name", "datamining.fetch").
				Str("sheet", name).
				Msg("sheet unavailable; the cn locale will be absent from derived names")
			return fetched{name: name}, nil
		}
		return fetched{name: name, sheet: sheet}, nil
	})

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, f := range results {
		if f.sheet != nil {
			r.sheets[f.name] = f.sheet
		} else {
			r.missing = append(r.missing, "datamining-cn/"+f.name)
		}
	}
	sort.Strings(r.missing)

	log.Info().
		Str("evt.name", "datamining.fetch").
		Int("sheets", len(r.sheets)).
		Int("missing", len(r.missing)).
		Msg("fetched cn dataset")

	return nil
}

// Sheet returns the named sheet, empty when the fetch failed.
func (r *Datamining) Sheet(name string) *exd.Sheet {
	if s, ok := r.sheets[name]; ok {
		return s
	}
	return exd.Empty(name)
}

func (r *Datamining) Missing() []string {
	return r.missing
}
