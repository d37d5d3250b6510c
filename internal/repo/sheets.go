package repo

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/async"
	"github.com/tataru-works/xivmill/internal/pkg/exd"
)

const sheetLoadConcurrency = 8

// SheetNames is every local sheet one build consumes. Load pulls the whole
// list up front so later phases never touch the filesystem.
var SheetNames = []string{
	"Aetheryte",
	"BNpcName",
	"BaseParam",
	"ClassJob",
	"ClassJobCategory",
	"ContentFinderCondition",
	"CraftType",
	"ENpcResident",
	"GCScripShopItem",
	"GatheringItem",
	"GatheringPoint",
	"GatheringPointBase",
	"GatheringType",
	"GilShopItem",
	"Item",
	"ItemAction",
	"ItemFood",
	"ItemUICategory",
	"Map",
	"PlaceName",
	"Quest",
	"Recipe",
	"RecipeLevelTable",
	"RetainerTask",
	"RetainerTaskNormal",
	"SecretRecipeBook",
	"SpecialShop",
	"TerritoryType",
}

// Sheets hands out the local game data sheets. After Load the repo is
// read-only, so no locking happens on the hot path.
type Sheets struct {
	dir    string
	sheets map[string]*exd.Sheet
}

func NewSheets(conf *appconfig.Config) *Sheets {
	return &Sheets{
		dir:    conf.DataDir,
		sheets: make(map[string]*exd.Sheet, len(SheetNames)),
	}
}

// Load reads every sheet in SheetNames. The data directory being absent
// fails the build outright; a single missing or unreadable sheet only
// degrades to an empty sheet with a warning, and everything derived from
// it comes out empty.
func (r *Sheets) Load() error {
	if _, err := os.Stat(r.dir); err != nil {
		return errors.Wrapf(err, "data directory %s is not usable", r.dir)
	}

	type loaded struct {
		name  string
		sheet *exd.Sheet
	}

	results, err := async.Map(SheetNames, sheetLoadConcurrency, func(name string) (loaded, error) {
		sheet, err := exd.ReadFile(filepath.Join(r.dir, name+".csv"), name)
		if err != nil {
			log.Warn().
				Err(err).
				Str("evt.name", "sheets.load").
				Str("sheet", name).
				Msg("sheet unavailable; continuing with an empty sheet")
			sheet = exd.Empty(name)
		}
		return loaded{name: name, sheet: sheet}, nil
	})
	if err != nil {
		return err
	}

	for _, l := range results {
		r.sheets[l.name] = l.sheet
	}

	log.Info().
		Str("evt.name", "sheets.load").
		Str("dir", r.dir).
		Int("sheets", len(results)).
		Msg("loaded local sheets")

	return nil
}

// Get returns the named sheet, or an empty sheet for a name Load never saw.
func (r *Sheets) Get(name string) *exd.Sheet {
	if s, ok := r.sheets[name]; ok {
		return s
	}
	return exd.Empty(name)
}
