package signals

import (
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// MarketCalculator derives sale recency from recorder data.
type MarketCalculator struct{}

func NewMarketCalculator() *MarketCalculator {
	return &MarketCalculator{}
}

// Calculate sets last-sale fields relative to now. A sale inside the last
// 365 days counts as recent.
func (c *MarketCalculator) Calculate(rec contracts.PropertyRecord, now time.Time, out *contracts.DerivedSignals) {
	out.LastSaleAmount = reconcile.Number(rec, reconcile.LastSaleAmountAliases...)

	sale := reconcile.Date(rec, reconcile.LastSaleDateAliases...)
	if sale == nil || sale.After(now) {
		return
	}
	out.LastSaleDate = sale

	days := int(now.Sub(*sale).Hours() / 24)
	out.DaysSinceSale = &days
	out.RecentSale = days < 365
}
