package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/pkg/artifact"
	"github.com/tataru-works/xivmill/internal/pkg/fetch"
	"github.com/tataru-works/xivmill/internal/repo"
)

func pipelineFixture() (sheets, docs, cnSheets map[string]string) {
	sheets = map[string]string{
		"Item": sheetCSV("Name,Description,Icon,Level{Item},Level{Equip},Rarity,ItemUICategory,CanBeHq,Price{Mid}",
			`0,"","","0","0","0","0","0","False","0"`,
			`100,"철검","견실한 철제 롱소드.","30601","23","22","2","2","True","500"`,
			`200,"구리 광석","","21202","1","0","1","47","False","0"`,
			`300,"","","0","0","0","0","0","False","0"`),
		"ItemUICategory": sheetCSV("Name",
			`2,"한손 검"`,
			`47,"원거리 무기"`),
		"Recipe": sheetCSV("CraftType,RecipeLevelTable,Item{Result},Amount{Result},Item{Ingredient}[0],Amount{Ingredient}[0]",
			`1,"1","1","100","1","200","3"`),
		"RecipeLevelTable": sheetCSV("ClassJobLevel,Stars,Difficulty,Quality,Durability,SuggestedCraftsmanship,SuggestedControl",
			`1,"12","0","1000","3600","70","22","11"`),
		"CraftType": sheetCSV("Name",
			`1,"단조"`),
		"GatheringItem": sheetCSV("Item",
			`10,"200"`),
		"GatheringPointBase": sheetCSV("GatheringType,GatheringLevel,Item[0]",
			`30,"1","10","10"`),
		"GatheringPoint": sheetCSV("GatheringPointBase,PlaceName,TerritoryType",
			`30001,"30","28","128"`),
		"GatheringType": sheetCSV("Name",
			`1,"벌목"`),
		"GilShopItem": sheetCSV("Item",
			`1769000,"100"`),
		"SpecialShop": sheetCSV("Item{Receive}[0][0],Count{Receive}[0][0],Item{Cost}[0][0],Count{Cost}[0][0],HQ{Cost}[0][0]",
			`1770000,"100","1","28","100","False"`),
		"PlaceName": sheetCSV("Name",
			`28,"림사 로민사"`,
			`50,"잔교 하층"`),
		"TerritoryType": sheetCSV("Name,Map,PlaceName",
			`128,"s1t1","11","28"`),
		"Map": sheetCSV("Id,SizeFactor,Offset{X},Offset{Y},PlaceName,TerritoryType",
			`2,"s1t1/00","200","0","0","28","128"`),
		"Aetheryte": sheetCSV("PlaceName",
			`8,"50"`),
		"ENpcResident": sheetCSV("Singular",
			`1005001,"무기상"`),
		"BNpcName": sheetCSV("Singular",
			`133,"들다람쥐"`),
		"ContentFinderCondition": sheetCSV("Name,Content,ContentLinkType",
			`1,"어둠의 세계","7","2"`),
		"Quest": sheetCSV("Name",
			`65564,"어둠의 기사"`),
	}

	docs = map[string]string{
		"items": `{
			"100": {"en": "Iron Sword", "ja": "アイアンソード"},
			"200": {"en": "Copper Ore"}
		}`,
		"item-patches": `{"100": "2.0"}`,
		"places":       `{"28": {"en": "Limsa Lominsa", "ja": "リムサ・ロミンサ"}}`,
		"npcs":         `{"1005001": {"en": "Arms Supplier", "zoneId": 128, "x": 10.2, "y": 11.8}}`,
		"mobs":         `{"133": {"en": "forest squirrel", "zoneId": 128}}`,
		"aetherytes": `[
			{"id": 8, "zoneId": 128, "x": 10, "y": 10, "type": 0, "name": {"en": "Aetheryte Plaza"}}
		]`,
		"item-vendors":     `{"100": [1005001]}`,
		"drop-sources":     `{"200": [133]}`,
		"instances":        `{"7": {"en": "The World of Darkness", "contentType": 2}}`,
		"instance-sources": `{"200": [7]}`,
		"treasure-sources": `{}`,
		"quests":           `{"65564": {"en": "Our End"}}`,
		"quest-sources":    `{"200": [65564]}`,
		"desynth-sources":  `{"400": [100]}`,
	}

	cnSheets = map[string]string{
		"Item": sheetCSV("Name",
			`100,"铁剑"`),
		"Quest": sheetCSV("Name",
			`65564,"暗黑骑士"`),
		"ContentFinderCondition": sheetCSV("Name,Content,ContentLinkType",
			`9,"暗之世界","7","2"`),
	}
	return sheets, docs, cnSheets
}

func newPipeline(t *testing.T, conf *appconfig.Config) *Pipeline {
	t.Helper()

	client := fetch.New(fetch.Options{Timeout: time.Second})
	sheetsRepo := repo.NewSheets(conf)
	teamcraftRepo := repo.NewTeamcraft(conf, client)
	dataminingRepo := repo.NewDatamining(conf, client)

	ref := NewRefData(sheetsRepo, teamcraftRepo, dataminingRepo)
	source := NewSource(sheetsRepo, teamcraftRepo, ref)

	writer, err := artifact.NewWriter(conf.OutDir)
	require.NoError(t, err)

	return NewPipeline(
		conf,
		sheetsRepo, teamcraftRepo, dataminingRepo,
		ref,
		NewItem(sheetsRepo, ref),
		NewRecipe(sheetsRepo, ref),
		NewGathering(sheetsRepo, teamcraftRepo, ref),
		source,
		NewTrade(source),
		NewZoneMap(sheetsRepo, ref),
		NewSearch(ref),
		NewExport(writer, nil),
	)
}

func readArtifact(t *testing.T, dir, name string, out any) {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	sheets, docs, cnSheets := pipelineFixture()
	conf := fixtureConf(t, sheets, docs, cnSheets)
	require.NoError(t, newPipeline(t, conf).Run(context.Background()))
	dir := conf.OutDir

	t.Run("EveryArtifactLands", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 13)
	})

	t.Run("ItemsCarryObtainability", func(t *testing.T) {
		var doc model.ItemsDoc
		readArtifact(t, dir, "items.json", &doc)

		require.Len(t, doc.Items, 2, "rows without an id or a name never make an item")
		assert.True(t, doc.Items[100].Craftable)
		assert.False(t, doc.Items[100].Gatherable)
		assert.True(t, doc.Items[200].Gatherable)
		assert.Equal(t, "한손 검", doc.Items[100].CategoryName)
	})

	t.Run("RecipesScaleOffTheLevelRow", func(t *testing.T) {
		var doc model.RecipesDoc
		readArtifact(t, dir, "recipes.json", &doc)

		require.Len(t, doc.Recipes[100], 1)
		recipe := doc.Recipes[100][0]
		assert.Equal(t, int64(1000), recipe.Difficulty.ValueOrZero())
		assert.Equal(t, []model.Ingredient{{ItemID: 200, Amount: 3}}, recipe.Ingredients)
		assert.Equal(t, []model.CraftType{{ID: 1, Name: "단조"}}, doc.CraftTypes)
	})

	t.Run("GatheringResolvesThePlace", func(t *testing.T) {
		var doc model.GatheringDoc
		readArtifact(t, dir, "gathering.json", &doc)

		require.Len(t, doc.Points[200], 1)
		assert.Equal(t, "림사 로민사", doc.Points[200][0].Place)
		assert.Equal(t, 11, doc.Points[200][0].MapID)
	})

	t.Run("LocatedVendorSuppressesGilshop", func(t *testing.T) {
		var doc model.SourcesDoc
		readArtifact(t, dir, "sources.json", &doc)

		kinds := make([]model.SourceKind, 0, len(doc.Sources[100]))
		for _, e := range doc.Sources[100] {
			kinds = append(kinds, e.Kind)
		}
		assert.Equalf(t, []model.SourceKind{model.SourceVendor, model.SourceSpecialShop}, kinds,
			"entries: %s", spew.Sdump(doc.Sources[100]))

		vendor := doc.Sources[100][0]
		require.Len(t, vendor.Vendors, 1)
		assert.Equal(t, "무기상", vendor.Vendors[0].NPC)
		assert.Equal(t, "림사 로민사", vendor.Vendors[0].Zone)
		assert.Equal(t, "잔교 하층", vendor.Vendors[0].Landmark)
	})

	t.Run("FeedsKeepRankOrder", func(t *testing.T) {
		var doc model.SourcesDoc
		readArtifact(t, dir, "sources.json", &doc)

		kinds := make([]model.SourceKind, 0, len(doc.Sources[200]))
		for _, e := range doc.Sources[200] {
			kinds = append(kinds, e.Kind)
		}
		assert.Equalf(t, []model.SourceKind{model.SourceDrop, model.SourceInstance, model.SourceQuest}, kinds,
			"entries: %s", spew.Sdump(doc.Sources[200]))
	})

	t.Run("TradesInvertToTheCurrency", func(t *testing.T) {
		var doc map[int][]*model.Trade
		readArtifact(t, dir, "trades.json", &doc)

		require.Len(t, doc[28], 1)
		assert.Equal(t, 100, doc[28][0].ItemID)
		assert.Equal(t, []model.TradeCost{{ItemID: 28, Amount: 100}}, doc[28][0].Costs)
	})

	t.Run("MapsKeyByZoneName", func(t *testing.T) {
		var doc model.MapsDoc
		readArtifact(t, dir, "maps.json", &doc)

		require.Contains(t, doc.Maps, "림사 로민사")
		assert.Equal(t, "s1t1/00", doc.Maps["림사 로민사"].Path)
		require.Len(t, doc.Maps["림사 로민사"].Aetherytes, 1)
		assert.Equal(t, "잔교 하층", doc.Maps["림사 로민사"].Aetherytes[0].Name)
	})

	t.Run("SearchIndexRoundTrips", func(t *testing.T) {
		var doc model.SearchDoc
		readArtifact(t, dir, "search.json", &doc)

		require.Len(t, doc.Items, 2)
		assert.Equal(t, float64(100), doc.Items[0][0])
		assert.Equal(t, "철검", doc.Items[0][1])
		assert.Equal(t, float64(1), doc.Items[0][7], "craftable coerces to 1")
		assert.Equal(t, "铁剑", doc.Items[0][12])
		assert.Equal(t, float64(200), doc.Items[1][0])
		assert.Equal(t, float64(1), doc.Items[1][8], "gatherable coerces to 1")
	})

	t.Run("AuxiliaryLocaleDocs", func(t *testing.T) {
		var questCN map[int]string
		readArtifact(t, dir, "quest-cn.json", &questCN)
		assert.Equal(t, map[int]string{65564: "暗黑骑士"}, questCN)

		var instanceCN map[string]string
		readArtifact(t, dir, "instance-cn.json", &instanceCN)
		assert.Equal(t, map[string]string{"2-7": "暗之世界"}, instanceCN)

		var names map[int]model.ItemNames
		readArtifact(t, dir, "item-names.json", &names)
		assert.Equal(t, map[int]model.ItemNames{
			100: {EN: "Iron Sword", JA: "アイアンソード", CN: "铁剑"},
			200: {EN: "Copper Ore"},
		}, names)

		var desynth map[int][]int
		readArtifact(t, dir, "desynth.json", &desynth)
		assert.Equal(t, map[int][]int{100: {400}}, desynth)
	})

	t.Run("MetaRecordsWhatWasMissing", func(t *testing.T) {
		var meta model.Meta
		readArtifact(t, dir, "meta.json", &meta)

		assert.NotEmpty(t, meta.BuildID)
		assert.Equal(t, []string{"teamcraft/nodes", "teamcraft/voyage-sources"}, meta.MissingDocs)
		assert.Equal(t, 2, meta.Counts["items.json"])
		assert.Equal(t, 2, meta.Counts["search.json"])
	})
}

func TestPipelineRunFailsWithoutDataDir(t *testing.T) {
	t.Parallel()

	conf := fixtureConf(t, nil, nil, nil)
	conf.DataDir = filepath.Join(t.TempDir(), "absent")

	err := newPipeline(t, conf).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}
