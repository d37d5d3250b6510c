package model

import "gopkg.in/guregu/null.v3"

type GatheringPoint struct {
	ItemID   int    `json:"item"`
	NodeID   int    `json:"node"`
	TypeID   int    `json:"type"`
	TypeName string `json:"typeName,omitempty"`
	Level    int    `json:"level"`

	Place string  `json:"place,omitempty"`
	MapID int     `json:"map,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`

	Legendary bool `json:"legendary,omitempty"`
	Ephemeral bool `json:"ephemeral,omitempty"`

	// Spawns lists the hours of the in-game day a timed node surfaces at;
	// Duration is how long it stays up, in in-game minutes. Both are empty
	// on always-up nodes.
	Spawns   []int `json:"spawns,omitempty"`
	Duration int   `json:"duration,omitempty"`

	Folklore null.String `json:"folklore,omitempty"`
}
