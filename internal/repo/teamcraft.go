package repo

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/async"
	"github.com/tataru-works/xivmill/internal/pkg/fetch"
)

// TeamcraftDocs is every community dataset document a build consumes.
var TeamcraftDocs = []string{
	"aetherytes",
	"desynth-sources",
	"drop-sources",
	"instance-sources",
	"instances",
	"item-patches",
	"item-vendors",
	"items",
	"mobs",
	"nodes",
	"npcs",
	"places",
	"quest-sources",
	"quests",
	"treasure-sources",
	"voyage-sources",
}

// Teamcraft fetches and hands out the community dataset documents. A
// document that cannot be fetched is recorded as missing and everything
// derived from it is simply absent from the build.
type Teamcraft struct {
	client *fetch.Client
	base   string
	limit  int

	docs    map[string]gjson.Result
	missing []string
}

func NewTeamcraft(conf *appconfig.Config, client *fetch.Client) *Teamcraft {
	return &Teamcraft{
		client: client,
		base:   conf.TeamcraftBaseURL,
		limit:  conf.FetchConcurrency,
		docs:   make(map[string]gjson.Result, len(TeamcraftDocs)),
	}
}

func (r *Teamcraft) Load(ctx context.Context) error {
	type fetched struct {
		name string
		doc  gjson.Result
		ok   bool
	}

	results, _ := async.Map(TeamcraftDocs, r.limit, func(name string) (fetched, error) {
		doc, err := r.client.JSON(ctx, r.base+name+".json")
		if err != nil {
			log.Warn().
				Err(err).
				Str("evt.name", "teamcraft.fetch").
				Str("doc", name).
				Msg("document unavailable; derived data will be absent")
			return fetched{name: name}, nil
		}
		return fetched{name: name, doc: doc, ok: true}, nil
	})

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, f := range results {
		if f.ok {
			r.docs[f.name] = f.doc
		} else {
			r.missing = append(r.missing, "teamcraft/"+f.name)
		}
	}
	sort.Strings(r.missing)

	log.Info().
		Str("evt.name", "teamcraft.fetch").
		Int("docs", len(r.docs)).
		Int("missing", len(r.missing)).
		Msg("fetched community dataset")

	return nil
}

// Doc returns the named document. The second return is false both for
// documents that failed to fetch and names Load never saw.
func (r *Teamcraft) Doc(name string) (gjson.Result, bool) {
	doc, ok := r.docs[name]
	return doc, ok
}

// Missing lists documents this build had to go without.
func (r *Teamcraft) Missing() []string {
	return r.missing
}
