package model

import "gopkg.in/guregu/null.v3"

type Recipe struct {
	ID            int    `json:"id"`
	ItemID        int    `json:"item"`
	CraftTypeID   int    `json:"craftType"`
	CraftTypeName string `json:"craftTypeName,omitempty"`
	Yield         int    `json:"yield"`
	Stars         int    `json:"stars,omitempty"`

	Ingredients []Ingredient `json:"ingredients"`

	// Fields below derive from the recipe level row (requirements also
	// from the recipe row itself). They stay null when the recipe
	// references a level the dump does not carry, which keeps "unknown"
	// distinct from a legitimate zero.
	ClassLevel            null.Int `json:"lvl,omitempty"`
	Difficulty            null.Int `json:"difficulty,omitempty"`
	Quality               null.Int `json:"quality,omitempty"`
	Durability            null.Int `json:"durability,omitempty"`
	RequiredCraftsmanship null.Int `json:"craftsmanship,omitempty"`
	RequiredControl       null.Int `json:"control,omitempty"`

	MaterialQualityFactor int `json:"materialQualityFactor,omitempty"`

	CanHq        bool `json:"canHq,omitempty"`
	QuickSynth   bool `json:"quickSynth,omitempty"`
	Specializing bool `json:"specializing,omitempty"`

	MasterBook *MasterBook `json:"masterBook,omitempty"`
}

type Ingredient struct {
	ItemID int `json:"item"`
	Amount int `json:"amount"`
}

// MasterBook is the crafting tome a recipe hides behind.
type MasterBook struct {
	ItemID int    `json:"item"`
	Name   string `json:"name"`
}
