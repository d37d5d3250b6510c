package model

import (
	"gopkg.in/guregu/null.v3"

	"github.com/tataru-works/xivmill/internal/util"
)

type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        int    `json:"icon"`
	ItemLevel   int    `json:"ilvl"`
	EquipLevel  int    `json:"elvl,omitempty"`
	Rarity      int    `json:"rarity"`
	CategoryID  int    `json:"category"`

	// CategoryName is resolved inline so the artifact stays self-contained.
	CategoryName string `json:"categoryName,omitempty"`

	CanBeHq bool `json:"canHq,omitempty"`

	// Craftable and Gatherable are derived once recipes and gathering
	// points are known; nothing else on an item mutates after creation.
	Craftable  bool `json:"craftable,omitempty"`
	Gatherable bool `json:"gatherable,omitempty"`

	Patch null.String `json:"patch,omitempty"`

	EquipStats *EquipStats `json:"equip,omitempty"`
	Food       *FoodEffect `json:"food,omitempty"`
}

// ItemNames carries the non-primary locales of an item name. A locale a
// dataset could not provide is absent rather than empty.
type ItemNames struct {
	EN string `json:"en,omitempty"`
	JA string `json:"ja,omitempty"`
	CN string `json:"cn,omitempty"`
}

func (n ItemNames) Empty() bool {
	return n.EN == "" && n.JA == "" && n.CN == ""
}

type EquipStats struct {
	PhysDamage   int `json:"pdmg,omitempty"`
	MagDamage    int `json:"mdmg,omitempty"`
	PhysDefense  int `json:"pdef,omitempty"`
	MagDefense   int `json:"mdef,omitempty"`
	DelayMs      int `json:"delay,omitempty"`
	MateriaSlots int `json:"materia,omitempty"`

	// AutoAttack is present only for weapons with a non-zero delay.
	AutoAttack null.Float `json:"aa,omitempty"`

	Jobs []string `json:"jobs,omitempty"`

	Stats []Stat `json:"stats,omitempty"`

	// HqStats carries the bonus the high-quality print adds on top of
	// Stats, only for items that exist in high quality.
	HqStats []Stat `json:"hqStats,omitempty"`
}

type Stat struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type FoodEffect struct {
	// ItemFoodID points back at the consumable bonus row, kept for
	// cross-checking against other datasets.
	ItemFoodID int `json:"foodId"`

	ExpBonus int `json:"expBonus,omitempty"`

	Bonuses []FoodBonus `json:"bonuses"`
}

// FoodBonus is one stat line of a consumable. Relative bonuses grant a
// percentage of the eater's base stat up to a cap; flat bonuses grant Value
// directly and carry no cap.
type FoodBonus struct {
	StatID   int    `json:"id"`
	Stat     string `json:"stat"`
	Relative bool   `json:"relative,omitempty"`
	Value    int    `json:"value"`
	Max      int    `json:"max,omitempty"`
	ValueHq  int    `json:"valueHq,omitempty"`
	MaxHq    int    `json:"maxHq,omitempty"`
}

// Effective resolves the granted bonus on top of base. Relative bonuses
// floor the scaled value and clamp at the cap; flat bonuses return the raw
// value and ignore the cap entirely.
func (b FoodBonus) Effective(base int, hq bool) int {
	value, max := b.Value, b.Max
	if hq {
		value, max = b.ValueHq, b.MaxHq
	}
	if !b.Relative {
		return value
	}
	return util.Min(base*value/100, max)
}
