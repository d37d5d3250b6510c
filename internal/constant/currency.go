package constant

const (
	CurrencyGil        = "gil"
	CurrencyGCScrip    = "gcscrip"
	CurrencyTomestone  = "tomestone"
	CurrencyTradeCard  = "tradecard"
	CurrencyCraftScrip = "craftscrip"

	// CurrencyExchange labels any trade currency no range below claims.
	CurrencyExchange = "exchange"
)

type CurrencyRange struct {
	From  int
	To    int
	Label string
}

// CurrencyRanges classifies special shop cost items by item id. Ranges are
// inclusive and evaluated in order; the first hit wins. The MGP range must
// stay ahead of the tomestone range since id 29 sits inside both.
var CurrencyRanges = []CurrencyRange{
	{From: ItemIDGil, To: ItemIDGil, Label: CurrencyGil},
	{From: 29, To: 29, Label: CurrencyTradeCard},
	{From: 28, To: 49, Label: CurrencyTomestone},
	{From: 20, To: 22, Label: CurrencyGCScrip},
	{From: 25199, To: 25200, Label: CurrencyCraftScrip},
	{From: 33913, To: 33914, Label: CurrencyCraftScrip},
}

// CurrencyLabel resolves the exchange class of a cost item.
func CurrencyLabel(itemID int) string {
	for _, r := range CurrencyRanges {
		if itemID >= r.From && itemID <= r.To {
			return r.Label
		}
	}
	return CurrencyExchange
}
