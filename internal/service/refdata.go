package service

import (
	"fmt"

	"github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"github.com/tataru-works/xivmill/internal/constant"
	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/repo"
	"github.com/tataru-works/xivmill/internal/util"
)

// RefData resolves ids into display values. Build folds the reference
// sheets and dataset documents into flat id-keyed tables once; every later
// phase then resolves names and levels with plain map hits.
//
// Name chains follow one pattern: primary locale first, then the remote
// dataset's ja, then its en, then the placeholder. Instances are the
// exception and run the compound-key chain documented on InstanceName.
type RefData struct {
	SheetsRepo     *repo.Sheets
	TeamcraftRepo  *repo.Teamcraft
	DataminingRepo *repo.Datamining

	itemKo    map[int]string
	itemNames map[int]model.ItemNames
	patches   map[int]string

	categories     map[int]string
	stats          map[int]string
	jobs           map[int]string
	jobCategories  map[int][]string
	craftTypes     map[int]string
	gatheringTypes map[int]string

	placesKo map[int]string
	placesEN map[int]string
	placesJA map[int]string

	territoryPlace map[int]int
	territoryMap   map[int]int

	npcKo  map[int]string
	npcEN  map[int]string
	npcLoc map[int]NPCLocation

	mobKo   map[int]string
	mobEN   map[int]string
	mobJA   map[int]string
	mobZone map[int]int

	aetherytes map[int][]model.Aetheryte

	instanceKo     map[string]string
	instanceKoByEN map[string]string
	instanceCN     map[string]string

	questKo map[int]string
	questEN map[int]string
	questJA map[int]string
	questCN map[int]string

	recipeLevels map[int]*model.RecipeLevel
	masterBooks  map[int]model.MasterBook
}

// NPCLocation is where a vendor stands, in dataset map coordinates.
type NPCLocation struct {
	ZoneID int
	X      float64
	Y      float64
}

func NewRefData(sheetsRepo *repo.Sheets, teamcraftRepo *repo.Teamcraft, dataminingRepo *repo.Datamining) *RefData {
	return &RefData{
		SheetsRepo:     sheetsRepo,
		TeamcraftRepo:  teamcraftRepo,
		DataminingRepo: dataminingRepo,

		itemKo:    map[int]string{},
		itemNames: map[int]model.ItemNames{},
		patches:   map[int]string{},

		categories:     map[int]string{},
		stats:          map[int]string{},
		jobs:           map[int]string{},
		jobCategories:  map[int][]string{},
		craftTypes:     map[int]string{},
		gatheringTypes: map[int]string{},

		placesKo: map[int]string{},
		placesEN: map[int]string{},
		placesJA: map[int]string{},

		territoryPlace: map[int]int{},
		territoryMap:   map[int]int{},

		npcKo:  map[int]string{},
		npcEN:  map[int]string{},
		npcLoc: map[int]NPCLocation{},

		mobKo:   map[int]string{},
		mobEN:   map[int]string{},
		mobJA:   map[int]string{},
		mobZone: map[int]int{},

		aetherytes: map[int][]model.Aetheryte{},

		instanceKo:     map[string]string{},
		instanceKoByEN: map[string]string{},
		instanceCN:     map[string]string{},

		questKo: map[int]string{},
		questEN: map[int]string{},
		questJA: map[int]string{},
		questCN: map[int]string{},

		recipeLevels: map[int]*model.RecipeLevel{},
		masterBooks:  map[int]model.MasterBook{},
	}
}

// Build runs after the repos have loaded. It never fails: whatever a source
// could not provide stays unresolved and surfaces as fallbacks later.
func (s *RefData) Build() {
	s.buildItems()
	s.buildCategories()
	s.buildJobs()
	s.buildPlaces()
	s.buildNPCs()
	s.buildMobs()
	s.buildAetherytes()
	s.buildInstances()
	s.buildQuests()
	s.buildCrafting()

	log.Info().
		Str("evt.name", "refdata.build").
		Int("items", len(s.itemKo)).
		Int("places", len(s.placesKo)).
		Int("instances", len(s.instanceKo)).
		Int("quests", len(s.questKo)).
		Int("recipeLevels", len(s.recipeLevels)).
		Msg("built reference tables")
}

func (s *RefData) buildItems() {
	for _, row := range s.SheetsRepo.Get("Item").Rows() {
		if name := row.Str("Name"); name != "" {
			s.itemKo[row.Key()] = name
		}
	}

	if doc, ok := s.TeamcraftRepo.Doc("items"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			id := int(key.Int())
			if id <= 0 {
				return true
			}
			n := s.itemNames[id]
			n.EN = value.Get("en").String()
			n.JA = value.Get("ja").String()
			s.itemNames[id] = n
			return true
		})
	}

	for _, row := range s.DataminingRepo.Sheet("Item").Rows() {
		if name := row.Str("Name"); name != "" {
			n := s.itemNames[row.Key()]
			n.CN = name
			s.itemNames[row.Key()] = n
		}
	}

	if doc, ok := s.TeamcraftRepo.Doc("item-patches"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			if id := int(key.Int()); id > 0 && value.String() != "" {
				s.patches[id] = value.String()
			}
			return true
		})
	}
}

func (s *RefData) buildCategories() {
	for _, row := range s.SheetsRepo.Get("ItemUICategory").Rows() {
		if name := row.Str("Name"); name != "" {
			s.categories[row.Key()] = name
		}
	}
	for _, row := range s.SheetsRepo.Get("BaseParam").Rows() {
		if name := row.Str("Name"); name != "" {
			s.stats[row.Key()] = name
		}
	}
	for _, row := range s.SheetsRepo.Get("CraftType").Rows() {
		if name := row.Str("Name"); name != "" {
			s.craftTypes[row.Key()] = name
		}
	}
	for _, row := range s.SheetsRepo.Get("GatheringType").Rows() {
		if name := row.Str("Name"); name != "" {
			s.gatheringTypes[row.Key()] = name
		}
	}
}

func (s *RefData) buildJobs() {
	for _, row := range s.SheetsRepo.Get("ClassJob").Rows() {
		abbr := row.Str("Abbreviation")
		if abbr == "" {
			abbr = row.Str("Name")
		}
		if abbr != "" {
			s.jobs[row.Key()] = abbr
		}
	}

	// ClassJobCategory carries one boolean column per job, named by the
	// job's abbreviation.
	categorySheet := s.SheetsRepo.Get("ClassJobCategory")
	cols := categorySheet.Columns()
	for _, row := range categorySheet.Rows() {
		var members []string
		for _, col := range cols {
			if col == "Name" {
				continue
			}
			if row.Bool(col) {
				members = append(members, col)
			}
		}
		if len(members) > 0 {
			s.jobCategories[row.Key()] = members
		}
	}
}

func (s *RefData) buildPlaces() {
	for _, row := range s.SheetsRepo.Get("PlaceName").Rows() {
		if name := row.Str("Name"); name != "" {
			s.placesKo[row.Key()] = name
		}
	}

	if doc, ok := s.TeamcraftRepo.Doc("places"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			id := int(key.Int())
			if id <= 0 {
				return true
			}
			if en := value.Get("en").String(); en != "" {
				s.placesEN[id] = en
			}
			if ja := value.Get("ja").String(); ja != "" {
				s.placesJA[id] = ja
			}
			return true
		})
	}

	for _, row := range s.SheetsRepo.Get("TerritoryType").Rows() {
		s.territoryPlace[row.Key()] = row.Int("PlaceName")
		s.territoryMap[row.Key()] = row.Int("Map")
	}
}

func (s *RefData) buildNPCs() {
	for _, row := range s.SheetsRepo.Get("ENpcResident").Rows() {
		if name := row.Str("Singular"); name != "" {
			s.npcKo[row.Key()] = name
		}
	}

	if doc, ok := s.TeamcraftRepo.Doc("npcs"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			id := int(key.Int())
			if id <= 0 {
				return true
			}
			if en := value.Get("en").String(); en != "" {
				s.npcEN[id] = en
			}
			if zone := int(value.Get("zoneId").Int()); zone > 0 {
				s.npcLoc[id] = NPCLocation{
					ZoneID: zone,
					X:      value.Get("x").Float(),
					Y:      value.Get("y").Float(),
				}
			}
			return true
		})
	}
}

func (s *RefData) buildMobs() {
	for _, row := range s.SheetsRepo.Get("BNpcName").Rows() {
		if name := row.Str("Singular"); name != "" {
			s.mobKo[row.Key()] = name
		}
	}

	if doc, ok := s.TeamcraftRepo.Doc("mobs"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			id := int(key.Int())
			if id <= 0 {
				return true
			}
			if en := value.Get("en").String(); en != "" {
				s.mobEN[id] = en
			}
			if ja := value.Get("ja").String(); ja != "" {
				s.mobJA[id] = ja
			}
			if zone := int(value.Get("zoneId").Int()); zone > 0 {
				s.mobZone[id] = zone
			}
			return true
		})
	}
}

func (s *RefData) buildAetherytes() {
	local := s.SheetsRepo.Get("Aetheryte")

	doc, ok := s.TeamcraftRepo.Doc("aetherytes")
	if !ok {
		return
	}

	doc.ForEach(func(_, value gjson.Result) bool {
		// type 0 is the town and field crystals; everything else is
		// aethernet furniture that never counts as a landmark.
		if int(value.Get("type").Int()) != 0 {
			return true
		}

		id := int(value.Get("id").Int())
		zone := int(value.Get("zoneId").Int())
		if id <= 0 || zone <= 0 {
			return true
		}

		name := ""
		if row, found := local.Row(id); found {
			name = s.placesKo[row.Int("PlaceName")]
		}
		if name == "" {
			name = value.Get("name.en").String()
		}
		if name == "" {
			name = constant.NamePlaceholder
		}

		s.aetherytes[zone] = append(s.aetherytes[zone], model.Aetheryte{
			ID:     id,
			Name:   name,
			Type:   0,
			ZoneID: zone,
			X:      value.Get("x").Float(),
			Y:      value.Get("y").Float(),
		})
		return true
	})
}

func (s *RefData) buildInstances() {
	for _, row := range s.SheetsRepo.Get("ContentFinderCondition").Rows() {
		name := row.Str("Name")
		if name == "" {
			continue
		}
		s.instanceKo[instanceKey(row.Int("ContentLinkType"), row.Int("Content"))] = name
	}

	for _, row := range s.DataminingRepo.Sheet("ContentFinderCondition").Rows() {
		name := row.Str("Name")
		if name == "" {
			continue
		}
		s.instanceCN[instanceKey(row.Int("ContentLinkType"), row.Int("Content"))] = name
	}

	// Bridge table for instances whose content id drifts between datasets:
	// where the compound key does resolve, remember the primary-locale name
	// under the normalized English name too.
	if doc, ok := s.TeamcraftRepo.Doc("instances"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			id := int(key.Int())
			en := value.Get("en").String()
			if id <= 0 || en == "" {
				return true
			}
			contentType := int(value.Get("contentType").Int())
			if ko, found := s.instanceKo[instanceKey(contentType, id)]; found {
				s.instanceKoByEN[util.NormalizeName(en)] = ko
			}
			return true
		})
	}
}

func (s *RefData) buildQuests() {
	for _, row := range s.SheetsRepo.Get("Quest").Rows() {
		if name := row.Str("Name"); name != "" {
			s.questKo[row.Key()] = name
		}
	}

	if doc, ok := s.TeamcraftRepo.Doc("quests"); ok {
		doc.ForEach(func(key, value gjson.Result) bool {
			id := int(key.Int())
			if id <= 0 {
				return true
			}
			if en := value.Get("en").String(); en != "" {
				s.questEN[id] = en
			}
			if ja := value.Get("ja").String(); ja != "" {
				s.questJA[id] = ja
			}
			return true
		})
	}

	for _, row := range s.DataminingRepo.Sheet("Quest").Rows() {
		if name := row.Str("Name"); name != "" {
			s.questCN[row.Key()] = name
		}
	}
}

func (s *RefData) buildCrafting() {
	for _, row := range s.SheetsRepo.Get("RecipeLevelTable").Rows() {
		s.recipeLevels[row.Key()] = &model.RecipeLevel{
			ID:                     row.Key(),
			ClassJobLevel:          row.Int("ClassJobLevel"),
			Stars:                  row.Int("Stars"),
			Difficulty:             row.Int("Difficulty"),
			Quality:                row.Int("Quality"),
			Durability:             row.Int("Durability"),
			SuggestedCraftsmanship: row.Int("SuggestedCraftsmanship"),
			SuggestedControl:       row.Int("SuggestedControl"),
		}
	}

	for _, row := range s.SheetsRepo.Get("SecretRecipeBook").Rows() {
		itemID := row.Int("Item")
		if itemID <= 0 {
			continue
		}
		name := row.Str("Name")
		if name == "" {
			name = s.ItemName(itemID)
		}
		s.masterBooks[row.Key()] = model.MasterBook{
			ItemID: itemID,
			Name:   name,
		}
	}
}

func instanceKey(contentType, contentID int) string {
	return fmt.Sprintf("%d-%d", contentType, contentID)
}

// ItemName resolves an item's display name along the standard chain.
func (s *RefData) ItemName(id int) string {
	if name, ok := s.itemKo[id]; ok {
		return name
	}
	n := s.itemNames[id]
	if n.JA != "" {
		return n.JA
	}
	if n.EN != "" {
		return n.EN
	}
	return constant.NamePlaceholder
}

// ItemNames returns the non-primary locales of an item name.
func (s *RefData) ItemNames(id int) model.ItemNames {
	return s.itemNames[id]
}

// ItemNameTable is the item-names artifact: every id carrying at least one
// non-primary locale name.
func (s *RefData) ItemNameTable() map[int]model.ItemNames {
	out := make(map[int]model.ItemNames, len(s.itemNames))
	for id, n := range s.itemNames {
		if !n.Empty() {
			out[id] = n
		}
	}
	return out
}

// HasItem reports whether the primary dump knows this item id.
func (s *RefData) HasItem(id int) bool {
	_, ok := s.itemKo[id]
	return ok
}

// Patch returns the version label an item was introduced in, when the
// remote dataset covers it.
func (s *RefData) Patch(id int) null.String {
	if p, ok := s.patches[id]; ok {
		return null.StringFrom(p)
	}
	return null.String{}
}

func (s *RefData) CategoryName(id int) string {
	if name, ok := s.categories[id]; ok {
		return name
	}
	if id <= 0 {
		return ""
	}
	return constant.NamePlaceholder
}

func (s *RefData) StatName(id int) string {
	if name, ok := s.stats[id]; ok {
		return name
	}
	if id <= 0 {
		return ""
	}
	return constant.NamePlaceholder
}

// JobsFor expands a class job category into job abbreviations.
func (s *RefData) JobsFor(categoryID int) []string {
	return s.jobCategories[categoryID]
}

func (s *RefData) CraftTypeName(id int) string {
	if name, ok := s.craftTypes[id]; ok {
		return name
	}
	return constant.NamePlaceholder
}

func (s *RefData) GatheringTypeName(id int) string {
	if name, ok := s.gatheringTypes[id]; ok {
		return name
	}
	return constant.NamePlaceholder
}

// PlaceName resolves a place name: primary locale, then the remote
// dataset's ja, then its en, then the placeholder.
func (s *RefData) PlaceName(id int) string {
	if id <= 0 {
		return ""
	}
	if name, ok := s.placesKo[id]; ok {
		return name
	}
	if name, ok := s.placesJA[id]; ok {
		return name
	}
	if name, ok := s.placesEN[id]; ok {
		return name
	}
	return constant.NamePlaceholder
}

// ZoneName names the zone a territory belongs to, empty when unknown.
func (s *RefData) ZoneName(territoryID int) string {
	place := s.territoryPlace[territoryID]
	if place <= 0 {
		return ""
	}
	return s.PlaceName(place)
}

// TerritoryMapID returns the map a territory renders on, 0 when unknown.
func (s *RefData) TerritoryMapID(territoryID int) int {
	return s.territoryMap[territoryID]
}

func (s *RefData) NPCName(id int) string {
	if name, ok := s.npcKo[id]; ok {
		return name
	}
	if name, ok := s.npcEN[id]; ok {
		return name
	}
	return constant.NamePlaceholder
}

func (s *RefData) NPCLocation(id int) (NPCLocation, bool) {
	loc, ok := s.npcLoc[id]
	return loc, ok
}

func (s *RefData) MobName(id int) string {
	if name, ok := s.mobKo[id]; ok {
		return name
	}
	if name, ok := s.mobJA[id]; ok {
		return name
	}
	if name, ok := s.mobEN[id]; ok {
		return name
	}
	return constant.NamePlaceholder
}

// MobZone returns the territory a mob roams, 0 when unknown.
func (s *RefData) MobZone(id int) int {
	return s.mobZone[id]
}

// AetherytesIn lists the landmark aetherytes of a zone, dataset order.
func (s *RefData) AetherytesIn(zoneID int) []model.Aetheryte {
	return s.aetherytes[zoneID]
}

// NearestAetheryte finds the landmark closest to (x, y) in a zone. Zones
// without landmarks yield no result rather than an error.
func (s *RefData) NearestAetheryte(zoneID int, x, y float64) (string, bool) {
	candidates := s.aetherytes[zoneID]
	if len(candidates) == 0 {
		return "", false
	}

	best := 0
	bestDist := -1.0
	for i, a := range candidates {
		dx, dy := a.X-x, a.Y-y
		dist := dx*dx + dy*dy
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return candidates[best].Name, true
}

// InstanceName resolves an instance name. Content ids repeat across content
// types, so the primary lookup runs on the compound (type, id) key; a miss
// falls back to the normalized English name bridge, then the raw English
// name, then a numbered placeholder.
func (s *RefData) InstanceName(contentType, contentID int, en string) string {
	if name, ok := s.instanceKo[instanceKey(contentType, contentID)]; ok {
		return name
	}
	if en != "" {
		if name, ok := s.instanceKoByEN[util.NormalizeName(en)]; ok {
			return name
		}
		return en
	}
	return fmt.Sprintf("#%d", contentID)
}

func (s *RefData) QuestName(id int) string {
	if name, ok := s.questKo[id]; ok {
		return name
	}
	if name, ok := s.questJA[id]; ok {
		return name
	}
	if name, ok := s.questEN[id]; ok {
		return name
	}
	return constant.NamePlaceholder
}

func (s *RefData) RecipeLevel(id int) (*model.RecipeLevel, bool) {
	rl, ok := s.recipeLevels[id]
	return rl, ok
}

func (s *RefData) MasterBook(id int) (model.MasterBook, bool) {
	mb, ok := s.masterBooks[id]
	return mb, ok
}

// RecipeLevels exposes the whole table for the recipe-levels artifact.
func (s *RefData) RecipeLevels() map[int]*model.RecipeLevel {
	return s.recipeLevels
}

// Categories lists the item categories sorted by id.
func (s *RefData) Categories() []model.Category {
	var out []model.Category
	linq.From(s.categories).
		SelectT(func(kv linq.KeyValue) model.Category {
			return model.Category{ID: kv.Key.(int), Name: kv.Value.(string)}
		}).
		SortT(func(a, b model.Category) bool { return a.ID < b.ID }).
		ToSlice(&out)
	return out
}

func (s *RefData) CraftTypes() []model.CraftType {
	var out []model.CraftType
	linq.From(s.craftTypes).
		SelectT(func(kv linq.KeyValue) model.CraftType {
			return model.CraftType{ID: kv.Key.(int), Name: kv.Value.(string)}
		}).
		SortT(func(a, b model.CraftType) bool { return a.ID < b.ID }).
		ToSlice(&out)
	return out
}

func (s *RefData) GatheringTypes() []model.GatheringType {
	var out []model.GatheringType
	linq.From(s.gatheringTypes).
		SelectT(func(kv linq.KeyValue) model.GatheringType {
			return model.GatheringType{ID: kv.Key.(int), Name: kv.Value.(string)}
		}).
		SortT(func(a, b model.GatheringType) bool { return a.ID < b.ID }).
		ToSlice(&out)
	return out
}

// QuestCNMap is the quest-cn artifact: quest id to CN name.
func (s *RefData) QuestCNMap() map[int]string {
	return s.questCN
}

// InstanceCNMap is the instance-cn artifact: compound key to CN name.
func (s *RefData) InstanceCNMap() map[string]string {
	return s.instanceCN
}
