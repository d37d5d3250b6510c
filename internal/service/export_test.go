package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/pkg/artifact"
)

func exportFixture() *Artifacts {
	return &Artifacts{
		Items: &model.ItemsDoc{
			Items: map[int]*model.Item{
				100: {ID: 100, Name: "철검", CategoryID: 2, Rarity: 2, Craftable: true},
			},
			Categories: []model.Category{{ID: 2, Name: "한손 검"}},
		},
		Recipes: &model.RecipesDoc{
			Recipes:    map[int][]*model.Recipe{100: {{ID: 1, ItemID: 100, Yield: 1}}},
			CraftTypes: []model.CraftType{{ID: 1, Name: "단조"}},
		},
		Gathering: &model.GatheringDoc{
			Points:         map[int][]*model.GatheringPoint{},
			GatheringTypes: []model.GatheringType{},
		},
		Sources: &model.SourcesDoc{
			Sources: map[int][]*model.SourceEntry{
				100: {{Kind: model.SourceGilShop, Currency: "gil", CurrencyItemID: 1}},
			},
		},
		Trades: map[int][]*model.Trade{},
		Maps: &model.MapsDoc{
			Maps: map[string]*model.ZoneMap{
				"림사 로민사": {ID: 2, Zone: "림사 로민사", Path: "s1t1/00", SizeFactor: 200},
			},
		},
		Search: &model.SearchDoc{
			Categories: []model.Category{{ID: 2, Name: "한손 검"}},
			Fields:     model.SearchFields,
			Items:      [][]any{{100, "철검", 2, 0, 0, 0, 2, 1, 0, "", "Iron Sword", "", ""}},
		},
		ItemNames:    map[int]model.ItemNames{100: {EN: "Iron Sword"}},
		RecipeLevels: map[int]*model.RecipeLevel{1: {ID: 1, ClassJobLevel: 5, Difficulty: 1000}},
		QuestCN:      map[int]string{65564: "暗黑骑士"},
		InstanceCN:   map[string]string{"2-4": "沙斯塔夏溶洞"},
		Desynth:      map[int][]int{100: {200, 201}},
		MissingDocs:  []string{"teamcraft/nodes"},
	}
}

func TestExportWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer, err := artifact.NewWriter(dir)
	require.NoError(t, err)

	meta, err := NewExport(writer, nil).Write(context.Background(), exportFixture())
	require.NoError(t, err)

	t.Run("EveryArtifactLands", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{
			"items.json", "recipes.json", "gathering.json", "sources.json",
			"trades.json", "maps.json", "search.json", "item-names.json",
			"recipe-levels.json", "quest-cn.json", "instance-cn.json",
			"desynth.json", "meta.json",
		}, names)
	})

	t.Run("MetaDescribesTheBuild", func(t *testing.T) {
		assert.NotEmpty(t, meta.BuildID)
		assert.False(t, meta.BuiltAt.IsZero())
		assert.Equal(t, []string{"teamcraft/nodes"}, meta.MissingDocs)

		assert.Equal(t, 1, meta.Counts["items.json"])
		assert.Equal(t, 1, meta.Counts["search.json"])
		assert.Equal(t, 0, meta.Counts["trades.json"])
		for name, size := range meta.Sizes {
			assert.Positive(t, size, name)
		}
	})

	t.Run("ItemsDocRoundTrips", func(t *testing.T) {
		b, err := os.ReadFile(filepath.Join(dir, "items.json"))
		require.NoError(t, err)

		var doc model.ItemsDoc
		require.NoError(t, json.Unmarshal(b, &doc))
		require.Contains(t, doc.Items, 100)
		assert.Equal(t, "철검", doc.Items[100].Name)
		assert.True(t, doc.Items[100].Craftable)
	})

	t.Run("MetaDocMatchesReturnedMeta", func(t *testing.T) {
		b, err := os.ReadFile(filepath.Join(dir, "meta.json"))
		require.NoError(t, err)

		var got model.Meta
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, meta.BuildID, got.BuildID)
		assert.Equal(t, meta.Counts, got.Counts)
	})
}
