package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/pkg/artifact"
	"github.com/tataru-works/xivmill/internal/pkg/bininfo"
	"github.com/tataru-works/xivmill/internal/pkg/buildid"
)

// Artifacts is everything one build derived, ready to serialize.
type Artifacts struct {
	Items     *model.ItemsDoc
	Recipes   *model.RecipesDoc
	Gathering *model.GatheringDoc
	Sources   *model.SourcesDoc
	Trades    map[int][]*model.Trade
	Maps      *model.MapsDoc
	Search    *model.SearchDoc

	ItemNames    map[int]model.ItemNames
	RecipeLevels map[int]*model.RecipeLevel
	QuestCN      map[int]string
	InstanceCN   map[string]string
	Desynth      map[int][]int

	// MissingDocs lists the remote documents this build went without.
	MissingDocs []string
}

// Export lands the build's documents in the output directory and, when a
// bucket is configured, publishes them. One artifact failing to land
// degrades that artifact only; the meta document failing means the output
// directory itself is unusable, which fails the build.
type Export struct {
	Writer    *artifact.Writer
	Publisher *artifact.Publisher
}

func NewExport(writer *artifact.Writer, publisher *artifact.Publisher) *Export {
	return &Export{Writer: writer, Publisher: publisher}
}

type artifactDoc struct {
	name  string
	count int
	doc   any
}

func (s *Export) docs(a *Artifacts) []artifactDoc {
	return []artifactDoc{
		{"items.json", len(a.Items.Items), a.Items},
		{"recipes.json", len(a.Recipes.Recipes), a.Recipes},
		{"gathering.json", len(a.Gathering.Points), a.Gathering},
		{"sources.json", len(a.Sources.Sources), a.Sources},
		{"trades.json", len(a.Trades), a.Trades},
		{"maps.json", len(a.Maps.Maps), a.Maps},
		{"search.json", len(a.Search.Items), a.Search},
		{"item-names.json", len(a.ItemNames), a.ItemNames},
		{"recipe-levels.json", len(a.RecipeLevels), a.RecipeLevels},
		{"quest-cn.json", len(a.QuestCN), a.QuestCN},
		{"instance-cn.json", len(a.InstanceCN), a.InstanceCN},
		{"desynth.json", len(a.Desynth), a.Desynth},
	}
}

func (s *Export) Write(ctx context.Context, a *Artifacts) (*model.Meta, error) {
	meta := &model.Meta{
		BuildID:     buildid.New(),
		Version:     bininfo.Version,
		BuiltAt:     time.Now().UTC(),
		Counts:      map[string]int{},
		Sizes:       map[string]int{},
		MissingDocs: a.MissingDocs,
	}

	docs := s.docs(a)
	written := make([]string, 0, len(docs)+1)
	for _, d := range docs {
		size, err := s.Writer.WriteJSON(d.name, d.doc)
		if err != nil {
			log.Warn().
				Err(err).
				Str("evt.name", "export.write").
				Str("artifact", d.name).
				Msg("artifact not written")
			continue
		}
		meta.Counts[d.name] = d.count
		meta.Sizes[d.name] = size
		written = append(written, d.name)
	}

	if _, err := s.Writer.WriteJSON("meta.json", meta); err != nil {
		return meta, errors.Wrap(err, "failed to write build meta")
	}
	written = append(written, "meta.json")

	log.Info().
		Str("evt.name", "export.write").
		Str("buildId", meta.BuildID).
		Str("dir", s.Writer.Dir()).
		Int("artifacts", len(written)).
		Msg("landed build artifacts")

	if s.Publisher.Enabled() {
		if err := s.Publisher.Publish(ctx, meta.BuildID, s.Writer.Dir(), written); err != nil {
			return meta, errors.Wrap(err, "failed to publish artifacts")
		}
	}

	return meta, nil
}
