package signals

import (
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// LoanCalculator resolves the loan maturity date, preferring a recorded due
// date and falling back to origination date plus term.
type LoanCalculator struct{}

func NewLoanCalculator() *LoanCalculator {
	return &LoanCalculator{}
}

func (c *LoanCalculator) Calculate(rec contracts.PropertyRecord, out *contracts.DerivedSignals) {
	if due := reconcile.Date(rec, reconcile.LoanMaturityAliases...); due != nil {
		out.LoanMaturity = due
		return
	}

	start := reconcile.Date(rec, reconcile.LoanStartAliases...)
	termYears := reconcile.Number(rec, reconcile.LoanTermAliases...)
	if start == nil || termYears <= 0 {
		return
	}

	// Term years become 365-day spans truncated to whole days, so a 2.5
	// year term adds 912 days, not 912.5.
	days := int(termYears * 365)
	maturity := start.Add(time.Duration(days) * 24 * time.Hour)
	out.LoanMaturity = &maturity
}
