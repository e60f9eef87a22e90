/*
ledger.go - deterministic day-by-day balance projection

Pure function, never fails: it produces a ledger even for infeasible
action vectors, since the validator needs to see exactly where an
infeasible schedule goes wrong.
*/
package schedule

import "github.com/warp/cashflow-scheduler/actionset"

// BuildLedger computes the opening, deposit, bills, net, and closing
// balance for every day in one forward pass. O(Horizon).
func BuildLedger(p Plan, actions [Horizon]actionset.Symbol) [Horizon]DayLedger {
	deposits, bills, base := PrefixArrays(p)

	var ledger [Horizon]DayLedger
	netSoFar := int64(0)
	for t := 1; t <= Horizon; t++ {
		opening := base[t-1] + netSoFar
		a := actions[t-1]
		netToday := p.Actions.NetCentsOf(a)
		closing := base[t] + netSoFar + netToday

		ledger[t-1] = DayLedger{
			Day:          t,
			OpeningCents: opening,
			DepositCents: deposits[t],
			Action:       a,
			NetCents:     netToday,
			BillsCents:   bills[t],
			ClosingCents: closing,
		}
		netSoFar += netToday
	}
	return ledger
}
