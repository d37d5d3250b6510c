package model

import "time"

// SearchFields is the column layout of a compact index row, in order. The
// first ten columns come out of the primary compaction pass; the trailing
// locale columns are appended by a post-pass once the remote name datasets
// have been folded in.
var SearchFields = []string{
	"id",
	"name",
	"category",
	"icon",
	"ilvl",
	"elvl",
	"rarity",
	"craftable",
	"gatherable",
	"patch",
	"en",
	"ja",
	"cn",
}

// SearchDoc is the compact client-side search index: one array per item
// instead of one object, which cuts the payload roughly in half.
type SearchDoc struct {
	Categories []Category `json:"categories"`
	Fields     []string   `json:"fields"`
	Items      [][]any    `json:"items"`
}

// Artifact wrappers. Maps are keyed by item id unless noted; goccy encodes
// integer keys as strings the same way encoding/json does.

type ItemsDoc struct {
	Items      map[int]*Item `json:"items"`
	Categories []Category    `json:"categories"`
}

type RecipesDoc struct {
	// Recipes is keyed by result item id.
	Recipes    map[int][]*Recipe `json:"recipes"`
	CraftTypes []CraftType       `json:"craftTypes"`
}

type GatheringDoc struct {
	Points         map[int][]*GatheringPoint `json:"points"`
	GatheringTypes []GatheringType           `json:"gatheringTypes"`
}

type SourcesDoc struct {
	Sources map[int][]*SourceEntry `json:"sources"`
}

type MapsDoc struct {
	// Maps is keyed by zone name.
	Maps map[string]*ZoneMap `json:"maps"`
}

// Meta describes one finished build.
type Meta struct {
	BuildID string    `json:"buildId"`
	Version string    `json:"version"`
	BuiltAt time.Time `json:"builtAt"`

	// Counts holds per-artifact record counts; Sizes per-artifact bytes.
	Counts map[string]int `json:"counts"`
	Sizes  map[string]int `json:"sizes"`

	// MissingDocs lists remote documents that could not be fetched this
	// build. Their data is simply absent from the artifacts.
	MissingDocs []string `json:"missingDocs,omitempty"`
}
