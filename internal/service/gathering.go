package service

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/repo"
)

// gatheringItemSlots is how many item slots a GatheringPointBase row carries.
const gatheringItemSlots = 8

// Gathering derives where items can be gathered: the local sheets say which
// node yields which item, the remote node document says where and when that
// node is up.
type Gathering struct {
	SheetsRepo     *repo.Sheets
	TeamcraftRepo  *repo.Teamcraft
	RefDataService *RefData
}

func NewGathering(sheetsRepo *repo.Sheets, teamcraftRepo *repo.Teamcraft, refDataService *RefData) *Gathering {
	return &Gathering{
		SheetsRepo:     sheetsRepo,
		TeamcraftRepo:  teamcraftRepo,
		RefDataService: refDataService,
	}
}

// Derive returns gathering points grouped by item id, deduplicated per item
// by node id.
func (s *Gathering) Derive() map[int][]*model.GatheringPoint {
	gatheringItems := s.gatheringItems()
	pointPlaces := s.pointPlaces()
	nodes, _ := s.TeamcraftRepo.Doc("nodes")

	points := map[int][]*model.GatheringPoint{}
	seen := map[string]struct{}{}
	count := 0

	for _, base := range s.SheetsRepo.Get("GatheringPointBase").Rows() {
		nodeID := base.Key()
		if nodeID <= 0 {
			continue
		}
		node := nodes.Get(strconv.Itoa(nodeID))

		for i := 0; i < gatheringItemSlots; i++ {
			itemID, ok := gatheringItems[base.Int(fmt.Sprintf("Item[%d]", i))]
			if !ok {
				continue
			}
			dedup := fmt.Sprintf("%d|%d", itemID, nodeID)
			if _, dup := seen[dedup]; dup {
				continue
			}
			seen[dedup] = struct{}{}

			point := &model.GatheringPoint{
				ItemID:   itemID,
				NodeID:   nodeID,
				TypeID:   base.Int("GatheringType"),
				TypeName: s.RefDataService.GatheringTypeName(base.Int("GatheringType")),
				Level:    base.Int("GatheringLevel"),
			}
			s.locate(point, pointPlaces[nodeID], node)

			points[itemID] = append(points[itemID], point)
			count++
		}
	}

	log.Info().
		Str("evt.name", "derive.gathering").
		Int("points", count).
		Int("items", len(points)).
		Msg("derived gathering table")

	return points
}

// gatheringItems maps GatheringItem row ids to the item they yield.
func (s *Gathering) gatheringItems() map[int]int {
	out := map[int]int{}
	for _, row := range s.SheetsRepo.Get("GatheringItem").Rows() {
		if itemID := row.Int("Item"); itemID > 0 {
			out[row.Key()] = itemID
		}
	}
	return out
}

// pointPlace is the first in-world location a node base is registered at.
type pointPlace struct {
	placeID     int
	territoryID int
}

func (s *Gathering) pointPlaces() map[int]pointPlace {
	out := map[int]pointPlace{}
	for _, row := range s.SheetsRepo.Get("GatheringPoint").Rows() {
		baseID := row.Int("GatheringPointBase")
		if baseID <= 0 {
			continue
		}
		if _, ok := out[baseID]; ok {
			continue
		}
		out[baseID] = pointPlace{
			placeID:     row.Int("PlaceName"),
			territoryID: row.Int("TerritoryType"),
		}
	}
	return out
}

// locate fills the where and when of a point. The local sheets win for
// place and map; the node document supplies coordinates, timers and the
// folklore requirement, and backfills location when the sheets are silent.
func (s *Gathering) locate(point *model.GatheringPoint, place pointPlace, node gjson.Result) {
	point.Place = s.RefDataService.PlaceName(place.placeID)
	point.MapID = s.RefDataService.TerritoryMapID(place.territoryID)

	if !node.Exists() {
		return
	}

	point.X = node.Get("x").Float()
	point.Y = node.Get("y").Float()

	zone := int(node.Get("zoneId").Int())
	if point.Place == "" {
		point.Place = s.RefDataService.ZoneName(zone)
	}
	if point.MapID == 0 {
		point.MapID = s.RefDataService.TerritoryMapID(zone)
	}

	point.Legendary = node.Get("legendary").Bool()
	point.Ephemeral = node.Get("ephemeral").Bool()
	point.Duration = int(node.Get("duration").Int())
	node.Get("spawns").ForEach(func(_, hour gjson.Result) bool {
		point.Spawns = append(point.Spawns, int(hour.Int()))
		return true
	})

	if folklore := int(node.Get("folklore").Int()); folklore > 0 {
		point.Folklore = null.StringFrom(s.RefDataService.ItemName(folklore))
	}
}
