package service

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/pkg/exd"
	"github.com/tataru-works/xivmill/internal/repo"
)

// ZoneMap derives the map sheet into per-zone render metadata, the piece the
// frontend needs to project gathering and vendor coordinates onto a map image.
type ZoneMap struct {
	SheetsRepo     *repo.Sheets
	RefDataService *RefData
}

func NewZoneMap(sheetsRepo *repo.Sheets, refDataService *RefData) *ZoneMap {
	return &ZoneMap{
		SheetsRepo:     sheetsRepo,
		RefDataService: refDataService,
	}
}

// Derive keys every rendered map by its zone name. A zone rendered on more
// than one map keeps its first sheet row only, which is the primary floor.
func (s *ZoneMap) Derive() map[string]*model.ZoneMap {
	maps := map[string]*model.ZoneMap{}

	for _, row := range s.SheetsRepo.Get("Map").Rows() {
		m := s.derive(row)
		if m == nil {
			continue
		}
		if _, ok := maps[m.Zone]; ok {
			continue
		}
		maps[m.Zone] = m
	}

	log.Info().
		Str("evt.name", "derive.maps").
		Int("maps", len(maps)).
		Msg("derived zone maps")

	return maps
}

func (s *ZoneMap) derive(row exd.Row) *model.ZoneMap {
	path := row.Str("Id")
	placeID := row.Int("PlaceName")
	if row.Key() <= 0 || path == "" || placeID <= 0 {
		return nil
	}

	territoryID := row.Int("TerritoryType")

	return &model.ZoneMap{
		ID:          row.Key(),
		Zone:        s.RefDataService.PlaceName(placeID),
		Path:        path,
		SizeFactor:  row.Int("SizeFactor"),
		OffsetX:     row.Int("Offset{X}"),
		OffsetY:     row.Int("Offset{Y}"),
		TerritoryID: territoryID,
		Aetherytes: lo.Map(s.RefDataService.AetherytesIn(territoryID), func(a model.Aetheryte, _ int) model.MapMarker {
			return model.MapMarker{Name: a.Name, X: a.X, Y: a.Y}
		}),
	}
}
