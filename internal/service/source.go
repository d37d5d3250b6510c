package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"github.com/tataru-works/xivmill/internal/constant"
	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/repo"
)

const (
	specialShopListingSlots = 60
	specialShopReceiveSlots = 2
	specialShopCostSlots    = 3
)

// Source aggregates obtained-via facts about items. Every feed contributes
// one kind independently: a feed that failed to load leaves its kind out
// while the others keep populating.
type Source struct {
	SheetsRepo     *repo.Sheets
	TeamcraftRepo  *repo.Teamcraft
	RefDataService *RefData
}

func NewSource(sheetsRepo *repo.Sheets, teamcraftRepo *repo.Teamcraft, refDataService *RefData) *Source {
	return &Source{
		SheetsRepo:     sheetsRepo,
		TeamcraftRepo:  teamcraftRepo,
		RefDataService: refDataService,
	}
}

func (s *Source) Aggregate() map[int][]*model.SourceEntry {
	table := newSourceTable()
	prices := s.itemPrices()

	s.collectVendors(table, prices)
	s.collectGilShops(table, prices)
	s.collectGCShops(table)
	s.collectSpecialShops(table)
	s.collectDrops(table)
	s.collectInstances(table)
	s.collectTreasures(table)
	s.collectQuests(table)
	s.collectVentures(table)
	s.collectVoyages(table)
	s.collectDesynths(table)

	out := table.finish()

	count := 0
	for _, entries := range out {
		count += len(entries)
	}
	log.Info().
		Str("evt.name", "aggregate.sources").
		Int("entries", count).
		Int("items", len(out)).
		Msg("aggregated source table")

	return out
}

// sourceTable accumulates entries per item. Entries carrying an already
// seen fact are dropped on arrival: the first occurrence wins.
type sourceTable struct {
	entries map[int][]*model.SourceEntry
	seen    map[int]map[string]struct{}
}

func newSourceTable() *sourceTable {
	return &sourceTable{
		entries: map[int][]*model.SourceEntry{},
		seen:    map[int]map[string]struct{}{},
	}
}

func (t *sourceTable) add(itemID int, entry *model.SourceEntry) {
	if itemID <= 0 {
		return
	}
	key := entry.DedupKey()
	if _, dup := t.seen[itemID][key]; dup {
		return
	}
	if t.seen[itemID] == nil {
		t.seen[itemID] = map[string]struct{}{}
	}
	t.seen[itemID][key] = struct{}{}
	t.entries[itemID] = append(t.entries[itemID], entry)
}

// finish applies the one suppression rule and fixes the output order. A
// vendor entry with at least one resolved location supersedes the generic
// gilshop fact for the same item; no other kind suppresses another.
func (t *sourceTable) finish() map[int][]*model.SourceEntry {
	for itemID, entries := range t.entries {
		if hasLocatedVendor(entries) {
			kept := entries[:0]
			for _, e := range entries {
				if e.Kind != model.SourceGilShop {
					kept = append(kept, e)
				}
			}
			entries = kept
			t.entries[itemID] = entries
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Kind.Rank() < entries[j].Kind.Rank()
		})
	}
	return t.entries
}

func hasLocatedVendor(entries []*model.SourceEntry) bool {
	for _, e := range entries {
		if e.Kind != model.SourceVendor {
			continue
		}
		for _, v := range e.Vendors {
			if v.Zone != "" {
				return true
			}
		}
	}
	return false
}

// itemPrices indexes the gil price of every purchasable item.
func (s *Source) itemPrices() map[int]int {
	prices := map[int]int{}
	for _, row := range s.SheetsRepo.Get("Item").Rows() {
		if price := row.Int("Price{Mid}"); price > 0 {
			prices[row.Key()] = price
		}
	}
	return prices
}

func (s *Source) collectVendors(table *sourceTable, prices map[int]int) {
	doc, ok := s.TeamcraftRepo.Doc("item-vendors")
	if !ok {
		return
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		if itemID <= 0 {
			return true
		}

		var vendors []model.VendorLocation
		value.ForEach(func(_, npc gjson.Result) bool {
			npcID := int(npc.Int())
			location := model.VendorLocation{NPC: s.RefDataService.NPCName(npcID)}
			if loc, found := s.RefDataService.NPCLocation(npcID); found {
				location.Zone = s.RefDataService.ZoneName(loc.ZoneID)
				location.X, location.Y = loc.X, loc.Y
				if landmark, near := s.RefDataService.NearestAetheryte(loc.ZoneID, loc.X, loc.Y); near {
					location.Landmark = landmark
				}
			}
			vendors = append(vendors, location)
			return true
		})
		if len(vendors) == 0 {
			return true
		}

		entry := &model.SourceEntry{
			Kind:           model.SourceVendor,
			Currency:       constant.CurrencyGil,
			CurrencyItemID: constant.ItemIDGil,
			Vendors:        vendors,
		}
		if price := prices[itemID]; price > 0 {
			entry.Price = null.IntFrom(int64(price))
		}
		table.add(itemID, entry)
		return true
	})
}

func (s *Source) collectGilShops(table *sourceTable, prices map[int]int) {
	for _, row := range s.SheetsRepo.Get("GilShopItem").Rows() {
		itemID := row.Int("Item")
		if itemID <= 0 {
			continue
		}
		entry := &model.SourceEntry{
			Kind:           model.SourceGilShop,
			Currency:       constant.CurrencyGil,
			CurrencyItemID: constant.ItemIDGil,
		}
		if price := prices[itemID]; price > 0 {
			entry.Price = null.IntFrom(int64(price))
		}
		table.add(itemID, entry)
	}
}

func (s *Source) collectGCShops(table *sourceTable) {
	for _, row := range s.SheetsRepo.Get("GCScripShopItem").Rows() {
		itemID := row.Int("Item")
		if itemID <= 0 {
			continue
		}
		entry := &model.SourceEntry{
			Kind:     model.SourceGCShop,
			Currency: constant.CurrencyGCScrip,
		}
		if cost := row.Int("Cost{GCSeals}"); cost > 0 {
			entry.Price = null.IntFrom(int64(cost))
		}
		table.add(itemID, entry)
	}
}

func (s *Source) collectSpecialShops(table *sourceTable) {
	for _, listing := range s.specialShopListings() {
		primary := listing.costs[0]
		table.add(listing.itemID, &model.SourceEntry{
			Kind:           model.SourceSpecialShop,
			Price:          null.IntFrom(int64(primary.Amount)),
			Currency:       constant.CurrencyLabel(primary.ItemID),
			CurrencyItemID: primary.ItemID,
			Costs:          listing.costs,
		})
	}
}

// shopListing is one parsed special shop exchange: spend costs, receive
// amount × itemID.
type shopListing struct {
	itemID int
	amount int
	costs  []model.TradeCost
}

// specialShopListings flattens the SpecialShop sheet's listing grid. Each
// row carries up to 60 listings of 2 receive and 3 cost slots.
func (s *Source) specialShopListings() []shopListing {
	var listings []shopListing
	for _, row := range s.SheetsRepo.Get("SpecialShop").Rows() {
		for i := 0; i < specialShopListingSlots; i++ {
			var costs []model.TradeCost
			for c := 0; c < specialShopCostSlots; c++ {
				costItem := row.Int(fmt.Sprintf("Item{Cost}[%d][%d]", i, c))
				costAmount := row.Int(fmt.Sprintf("Count{Cost}[%d][%d]", i, c))
				if costItem > 0 && costAmount > 0 {
					costs = append(costs, model.TradeCost{
						ItemID: costItem,
						Amount: costAmount,
						Hq:     row.Bool(fmt.Sprintf("HQ{Cost}[%d][%d]", i, c)),
					})
				}
			}
			if len(costs) == 0 {
				continue
			}
			for r := 0; r < specialShopReceiveSlots; r++ {
				itemID := row.Int(fmt.Sprintf("Item{Receive}[%d][%d]", i, r))
				amount := row.Int(fmt.Sprintf("Count{Receive}[%d][%d]", i, r))
				if itemID > 0 && amount > 0 {
					listings = append(listings, shopListing{
						itemID: itemID,
						amount: amount,
						costs:  costs,
					})
				}
			}
		}
	}
	return listings
}

func (s *Source) collectDrops(table *sourceTable) {
	doc, ok := s.TeamcraftRepo.Doc("drop-sources")
	if !ok {
		return
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		var mobs []model.MobDrop
		value.ForEach(func(_, mob gjson.Result) bool {
			mobID := int(mob.Int())
			mobs = append(mobs, model.MobDrop{
				Name: s.RefDataService.MobName(mobID),
				Zone: s.RefDataService.ZoneName(s.RefDataService.MobZone(mobID)),
			})
			return true
		})
		if len(mobs) > 0 {
			table.add(itemID, &model.SourceEntry{Kind: model.SourceDrop, Mobs: mobs})
		}
		return true
	})
}

func (s *Source) collectInstances(table *sourceTable) {
	doc, ok := s.TeamcraftRepo.Doc("instance-sources")
	if !ok {
		return
	}
	instances, _ := s.TeamcraftRepo.Doc("instances")

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		var names []string
		value.ForEach(func(_, id gjson.Result) bool {
			instanceID := int(id.Int())
			instance := instances.Get(strconv.Itoa(instanceID))
			names = append(names, s.RefDataService.InstanceName(
				int(instance.Get("contentType").Int()),
				instanceID,
				instance.Get("en").String(),
			))
			return true
		})
		if len(names) > 0 {
			table.add(itemID, &model.SourceEntry{Kind: model.SourceInstance, Instances: names})
		}
		return true
	})
}

func (s *Source) collectTreasures(table *sourceTable) {
	doc, ok := s.TeamcraftRepo.Doc("treasure-sources")
	if !ok {
		return
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		var maps []string
		value.ForEach(func(_, mapItem gjson.Result) bool {
			maps = append(maps, s.RefDataService.ItemName(int(mapItem.Int())))
			return true
		})
		if len(maps) > 0 {
			table.add(itemID, &model.SourceEntry{Kind: model.SourceTreasure, Maps: maps})
		}
		return true
	})
}

func (s *Source) collectQuests(table *sourceTable) {
	doc, ok := s.TeamcraftRepo.Doc("quest-sources")
	if !ok {
		return
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		var quests []model.QuestRef
		value.ForEach(func(_, quest gjson.Result) bool {
			questID := int(quest.Int())
			quests = append(quests, model.QuestRef{
				ID:   questID,
				Name: s.RefDataService.QuestName(questID),
			})
			return true
		})
		if len(quests) > 0 {
			table.add(itemID, &model.SourceEntry{Kind: model.SourceQuest, Quests: quests})
		}
		return true
	})
}

func (s *Source) collectVentures(table *sourceTable) {
	normal := s.SheetsRepo.Get("RetainerTaskNormal")

	labels := map[int][]string{}
	seen := map[int]map[string]struct{}{}
	for _, row := range s.SheetsRepo.Get("RetainerTask").Rows() {
		if row.Bool("IsRandom") {
			continue
		}
		task, ok := normal.Row(row.Int("Task"))
		if !ok {
			continue
		}
		itemID := task.Int("Item")
		if itemID <= 0 {
			continue
		}

		label := ventureLabel(s.RefDataService.JobsFor(row.Int("ClassJobCategory")), row.Int("RetainerLevel"))
		if _, dup := seen[itemID][label]; dup {
			continue
		}
		if seen[itemID] == nil {
			seen[itemID] = map[string]struct{}{}
		}
		seen[itemID][label] = struct{}{}
		labels[itemID] = append(labels[itemID], label)
	}

	for itemID, ventures := range labels {
		table.add(itemID, &model.SourceEntry{Kind: model.SourceVenture, Ventures: ventures})
	}
}

// ventureLabel names a retainer task by the jobs that can run it and the
// retainer level it asks for.
func ventureLabel(jobs []string, level int) string {
	if len(jobs) == 0 {
		return fmt.Sprintf("Lv.%d", level)
	}
	return fmt.Sprintf("%s Lv.%d", strings.Join(jobs, "/"), level)
}

func (s *Source) collectVoyages(table *sourceTable) {
	doc, ok := s.TeamcraftRepo.Doc("voyage-sources")
	if !ok {
		return
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		var voyages []model.VoyageRef
		for _, kind := range []string{"airship", "submarine"} {
			value.Get(kind).ForEach(func(_, sector gjson.Result) bool {
				voyages = append(voyages, model.VoyageRef{Kind: kind, Name: sector.String()})
				return true
			})
		}
		if len(voyages) > 0 {
			table.add(itemID, &model.SourceEntry{Kind: model.SourceVoyage, Voyages: voyages})
		}
		return true
	})
}

// DesynthResults inverts the desynth feed. The feed says which items a
// result comes out of; the artifact says what an item desynthesizes into.
func (s *Source) DesynthResults() map[int][]int {
	results := map[int][]int{}

	doc, ok := s.TeamcraftRepo.Doc("desynth-sources")
	if !ok {
		return results
	}

	seen := map[string]struct{}{}
	doc.ForEach(func(key, value gjson.Result) bool {
		resultID := int(key.Int())
		if resultID <= 0 {
			return true
		}
		value.ForEach(func(_, source gjson.Result) bool {
			sourceID := int(source.Int())
			if sourceID <= 0 {
				return true
			}
			pair := fmt.Sprintf("%d|%d", sourceID, resultID)
			if _, dup := seen[pair]; dup {
				return true
			}
			seen[pair] = struct{}{}
			results[sourceID] = append(results[sourceID], resultID)
			return true
		})
		return true
	})

	return results
}

func (s *Source) collectDesynths(table *sourceTable) {
	doc, ok := s.TeamcraftRepo.Doc("desynth-sources")
	if !ok {
		return
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		itemID := int(key.Int())
		var desynths []string
		value.ForEach(func(_, source gjson.Result) bool {
			desynths = append(desynths, s.RefDataService.ItemName(int(source.Int())))
			return true
		})
		if len(desynths) > 0 {
			table.add(itemID, &model.SourceEntry{Kind: model.SourceDesynth, Desynths: desynths})
		}
		return true
	})
}
