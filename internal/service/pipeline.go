package service

import (
	"context"
	"os"
	"time"

	"github.com/felixge/fgprof"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/repo"
)

// Pipeline runs one whole build: load the datasets, fold the reference
// tables, derive and aggregate the item facts, compact the index and land
// the artifacts. Phases are strictly sequential; only the remote loads
// inside the ingestion phase run concurrently.
type Pipeline struct {
	Config *appconfig.Config

	SheetsRepo     *repo.Sheets
	TeamcraftRepo  *repo.Teamcraft
	DataminingRepo *repo.Datamining

	RefDataService   *RefData
	ItemService      *Item
	RecipeService    *Recipe
	GatheringService *Gathering
	SourceService    *Source
	TradeService     *Trade
	ZoneMapService   *ZoneMap
	SearchService    *Search
	ExportService    *Export
}

func NewPipeline(
	config *appconfig.Config,
	sheetsRepo *repo.Sheets,
	teamcraftRepo *repo.Teamcraft,
	dataminingRepo *repo.Datamining,
	refDataService *RefData,
	itemService *Item,
	recipeService *Recipe,
	gatheringService *Gathering,
	sourceService *Source,
	tradeService *Trade,
	zoneMapService *ZoneMap,
	searchService *Search,
	exportService *Export,
) *Pipeline {
	return &Pipeline{
		Config:           config,
		SheetsRepo:       sheetsRepo,
		TeamcraftRepo:    teamcraftRepo,
		DataminingRepo:   dataminingRepo,
		RefDataService:   refDataService,
		ItemService:      itemService,
		RecipeService:    recipeService,
		GatheringService: gatheringService,
		SourceService:    sourceService,
		TradeService:     tradeService,
		ZoneMapService:   zoneMapService,
		SearchService:    searchService,
		ExportService:    exportService,
	}
}

// Run executes the build to completion. The only errors that surface are
// the fatal preconditions: an unusable data directory and an unusable
// output directory. Everything else has already degraded to absence by the
// time it would matter here.
func (s *Pipeline) Run(ctx context.Context) error {
	started := time.Now()
	stopProfiler := s.startProfiler()
	defer stopProfiler()

	if err := s.SheetsRepo.Load(); err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return s.TeamcraftRepo.Load(egctx) })
	eg.Go(func() error { return s.DataminingRepo.Load(egctx) })
	if err := eg.Wait(); err != nil {
		return err
	}

	s.RefDataService.Build()

	items := s.ItemService.Derive()
	recipes := s.RecipeService.Derive()
	gathering := s.GatheringService.Derive()
	markObtainability(items, recipes, gathering)

	sources := s.SourceService.Aggregate()
	trades := s.TradeService.Invert()
	maps := s.ZoneMapService.Derive()

	// The compaction reads the obtainability flags, so it runs last.
	search := s.SearchService.Compact(items)

	meta, err := s.ExportService.Write(ctx, &Artifacts{
		Items:     &model.ItemsDoc{Items: items, Categories: s.RefDataService.Categories()},
		Recipes:   &model.RecipesDoc{Recipes: recipes, CraftTypes: s.RefDataService.CraftTypes()},
		Gathering: &model.GatheringDoc{Points: gathering, GatheringTypes: s.RefDataService.GatheringTypes()},
		Sources:   &model.SourcesDoc{Sources: sources},
		Trades:    trades,
		Maps:      &model.MapsDoc{Maps: maps},
		Search:    search,

		ItemNames:    s.RefDataService.ItemNameTable(),
		RecipeLevels: s.RefDataService.RecipeLevels(),
		QuestCN:      s.RefDataService.QuestCNMap(),
		InstanceCN:   s.RefDataService.InstanceCNMap(),
		Desynth:      s.SourceService.DesynthResults(),

		MissingDocs: append(s.TeamcraftRepo.Missing(), s.DataminingRepo.Missing()...),
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "pipeline.run").
		Str("buildId", meta.BuildID).
		Dur("took", time.Since(started)).
		Int("items", len(items)).
		Msg("build finished")

	return nil
}

// markObtainability flips the flags the compact index and the items
// artifact expose. An id derived by recipes or gathering but absent from
// the item table belongs to a filtered row and is skipped.
func markObtainability(items map[int]*model.Item, recipes map[int][]*model.Recipe, gathering map[int][]*model.GatheringPoint) {
	for id := range recipes {
		if item, ok := items[id]; ok {
			item.Craftable = true
		}
	}
	for id := range gathering {
		if item, ok := items[id]; ok {
			item.Gatherable = true
		}
	}
}

// startProfiler begins a whole-run profile when a path is configured. The
// returned stop lands the profile; profiling trouble never fails a build.
func (s *Pipeline) startProfiler() func() {
	if s.Config.ProfilePath == "" {
		return func() {}
	}

	f, err := os.Create(s.Config.ProfilePath)
	if err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "pipeline.profile").
			Str("path", s.Config.ProfilePath).
			Msg("profiler disabled")
		return func() {}
	}

	stop := fgprof.Start(f, fgprof.FormatPprof)
	return func() {
		err := stop()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Warn().
				Err(err).
				Str("evt.name", "pipeline.profile").
				Msg("failed to land profile")
			return
		}
		log.Info().
			Str("evt.name", "pipeline.profile").
			Str("path", s.Config.ProfilePath).
			Msg("profile written")
	}
}
