package model

import (
	"fmt"

	"gopkg.in/guregu/null.v3"
)

// SourceKind tags one way an item is obtained. The set is closed: consumers
// switch over it exhaustively, so adding a kind is a breaking change that
// has to land on both sides at once.
type SourceKind string

const (
	SourceVendor      SourceKind = "vendor"
	SourceGilShop     SourceKind = "gilshop"
	SourceGCShop      SourceKind = "gcshop"
	SourceSpecialShop SourceKind = "specialshop"
	SourceDrop        SourceKind = "drop"
	SourceInstance    SourceKind = "instance"
	SourceTreasure    SourceKind = "treasure"
	SourceQuest       SourceKind = "quest"
	SourceVenture     SourceKind = "venture"
	SourceVoyage      SourceKind = "voyage"
	SourceDesynth     SourceKind = "desynth"
)

var sourceKindRank = map[SourceKind]int{
	SourceVendor:      0,
	SourceGilShop:     1,
	SourceGCShop:      2,
	SourceSpecialShop: 3,
	SourceDrop:        4,
	SourceInstance:    5,
	SourceTreasure:    6,
	SourceQuest:       7,
	SourceVenture:     8,
	SourceVoyage:      9,
	SourceDesynth:     10,
}

// Rank orders kinds for stable artifact output.
func (k SourceKind) Rank() int {
	return sourceKindRank[k]
}

// SourceEntry is one obtained-via fact about an item. Only the fields the
// kind calls for are populated; everything else stays at its zero value and
// is omitted from the artifact.
type SourceEntry struct {
	Kind SourceKind `json:"kind"`

	Price          null.Int `json:"price,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	CurrencyItemID int      `json:"currencyItem,omitempty"`

	// Costs is the full cost list of a special shop listing, primary
	// cost first.
	Costs []TradeCost `json:"costs,omitempty"`

	Vendors   []VendorLocation `json:"vendors,omitempty"`
	Mobs      []MobDrop        `json:"mobs,omitempty"`
	Instances []string         `json:"instances,omitempty"`
	Maps      []string         `json:"maps,omitempty"`
	Quests    []QuestRef       `json:"quests,omitempty"`
	Ventures  []string         `json:"ventures,omitempty"`
	Voyages   []VoyageRef      `json:"voyages,omitempty"`
	Desynths  []string         `json:"desynths,omitempty"`
}

// DedupKey collapses entries carrying the same fact. Two entries of the
// same kind at the same price in the same currency describe one source,
// whatever feed they arrived from.
func (e *SourceEntry) DedupKey() string {
	return fmt.Sprintf("%s|%d|%s|%d", e.Kind, e.Price.ValueOrZero(), e.Currency, e.CurrencyItemID)
}

type VendorLocation struct {
	NPC      string  `json:"npc"`
	Zone     string  `json:"zone,omitempty"`
	Landmark string  `json:"landmark,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

type MobDrop struct {
	Name string `json:"name"`
	Zone string `json:"zone,omitempty"`
}

type QuestRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type VoyageRef struct {
	// Kind is "airship" or "submarine".
	Kind string `json:"kind"`
	Name string `json:"name"`
}
