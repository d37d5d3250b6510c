package service

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/tataru-works/xivmill/internal/model"
)

// Search compacts the enriched item table into the columnar client index.
// One array per item instead of one object keeps the payload small enough
// to ship to the browser whole.
type Search struct {
	RefDataService *RefData
}

func NewSearch(refDataService *RefData) *Search {
	return &Search{RefDataService: refDataService}
}

// Compact emits one row per item in SearchFields order, item ids ascending.
// The primary pass scalarizes the item record; the locale columns are
// appended afterwards, aligned by the id column rather than row position,
// since the cross-locale name tables come out of a separate ingestion round.
func (s *Search) Compact(items map[int]*model.Item) *model.SearchDoc {
	ids := lo.Keys(items)
	slices.Sort(ids)

	rows := make([][]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, primaryRow(items[id]))
	}
	s.appendLocales(rows)

	log.Info().
		Str("evt.name", "compact.search").
		Int("rows", len(rows)).
		Msg("compacted search index")

	return &model.SearchDoc{
		Categories: s.RefDataService.Categories(),
		Fields:     model.SearchFields,
		Items:      rows,
	}
}

func primaryRow(item *model.Item) []any {
	row := make([]any, 0, len(model.SearchFields))
	return append(row,
		item.ID,
		item.Name,
		item.CategoryID,
		item.Icon,
		item.ItemLevel,
		item.EquipLevel,
		item.Rarity,
		boolCell(item.Craftable),
		boolCell(item.Gatherable),
		item.Patch.ValueOrZero(),
	)
}

func (s *Search) appendLocales(rows [][]any) {
	for i, row := range rows {
		id, _ := row[0].(int)
		names := s.RefDataService.ItemNames(id)
		rows[i] = append(row, names.EN, names.JA, names.CN)
	}
}

func boolCell(v bool) int {
	if v {
		return 1
	}
	return 0
}
