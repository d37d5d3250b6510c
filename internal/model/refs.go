package model

// Reference rows resolved out of the dumps. These are lookup material for
// the build itself and for the category listings shipped with the index.

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CraftType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GatheringType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RecipeLevel struct {
	ID                     int `json:"id"`
	ClassJobLevel          int `json:"lvl"`
	Stars                  int `json:"stars,omitempty"`
	Difficulty             int `json:"difficulty"`
	Quality                int `json:"quality"`
	Durability             int `json:"durability"`
	SuggestedCraftsmanship int `json:"craftsmanship,omitempty"`
	SuggestedControl       int `json:"control,omitempty"`
}

// Aetheryte is a teleport crystal; type 0 marks the town and field crystals
// that count as landmarks for vendor locations.
type Aetheryte struct {
	ID     int
	Name   string
	Type   int
	ZoneID int
	X      float64
	Y      float64
}
