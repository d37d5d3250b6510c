package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// Trade is one special shop listing seen from a currency's side: spend the
// cost list, receive Amount of ItemID.
type Trade struct {
	ItemID int         `json:"item"`
	Amount int         `json:"amount"`
	Costs  []TradeCost `json:"costs"`
}

type TradeCost struct {
	ItemID int `json:"item"`
	Amount int `json:"amount"`

	// Hq marks a cost that demands the high-quality print of the item.
	Hq bool `json:"hq,omitempty"`
}

// Fingerprint identifies a listing by its result item and the set of
// currencies it costs, ignoring amounts. Shops frequently repeat the same
// exchange at several NPCs; those collapse to one listing.
func (t *Trade) Fingerprint() string {
	segments := make([]string, len(t.Costs))
	for i, cost := range t.Costs {
		segments[i] = fmt.Sprintf("%d", cost.ItemID)
	}
	sort.Strings(segments)

	original := fmt.Sprintf("%d>%s", t.ItemID, strings.Join(segments, "|"))
	return strconv.FormatUint(xxh3.HashStringSeed(original, 0), 16)
}
