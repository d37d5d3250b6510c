package service

import (
	"github.com/rs/zerolog/log"

	"github.com/tataru-works/xivmill/internal/model"
)

// Trade builds the reverse view of the special shop listings: what a
// currency can buy. Every currency in a listing's cost list gets a row, not
// only the primary one, so secondary currencies stay discoverable.
type Trade struct {
	SourceService *Source
}

func NewTrade(sourceService *Source) *Trade {
	return &Trade{SourceService: sourceService}
}

func (s *Trade) Invert() map[int][]*model.Trade {
	trades := map[int][]*model.Trade{}
	seen := map[int]map[string]struct{}{}

	count := 0
	for _, listing := range s.SourceService.specialShopListings() {
		trade := &model.Trade{
			ItemID: listing.itemID,
			Amount: listing.amount,
			Costs:  listing.costs,
		}
		fingerprint := trade.Fingerprint()

		for _, cost := range listing.costs {
			if _, dup := seen[cost.ItemID][fingerprint]; dup {
				continue
			}
			if seen[cost.ItemID] == nil {
				seen[cost.ItemID] = map[string]struct{}{}
			}
			seen[cost.ItemID][fingerprint] = struct{}{}
			trades[cost.ItemID] = append(trades[cost.ItemID], trade)
			count++
		}
	}

	log.Info().
		Str("evt.name", "aggregate.trades").
		Int("rows", count).
		Int("currencies", len(trades)).
		Msg("inverted trade table")

	return trades
}
