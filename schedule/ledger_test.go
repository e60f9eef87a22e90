package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/schedule"
)

func minimalPlan() schedule.Plan {
	p := schedule.NewPlan(actionset.Minimal())
	p.StartBalanceCents = 100_000
	p.TargetEndCents = 100_000
	p.BandCents = 5_000
	p.RentGuardCents = 50_000
	p.Bills = []schedule.Bill{{Day: 30, Name: "rent", AmountCents: 80_000}}
	return p
}

func allWorkActions(table actionset.Table) [schedule.Horizon]actionset.Symbol {
	var a [schedule.Horizon]actionset.Symbol
	work, _ := table.SymbolByName("Work")
	for i := range a {
		a[i] = work
	}
	return a
}

func TestBuildLedger_ClosingEqualsOpeningPlusNetMinusBills(t *testing.T) {
	p := minimalPlan()
	actions := allWorkActions(p.Actions)
	ledger := schedule.BuildLedger(p, actions)

	for _, row := range ledger {
		expected := row.OpeningCents + row.DepositCents + row.NetCents - row.BillsCents
		assert.Equal(t, expected, row.ClosingCents, "day %d invariant", row.Day)
	}
}

func TestBuildLedger_DayOneOpeningIsStartBalance(t *testing.T) {
	p := minimalPlan()
	actions := allWorkActions(p.Actions)
	ledger := schedule.BuildLedger(p, actions)
	assert.Equal(t, p.StartBalanceCents, ledger[0].OpeningCents)
}

func TestPrefixArrays_MergesDepositsAndAdjustments(t *testing.T) {
	p := minimalPlan()
	p.Deposits = []schedule.Deposit{{Day: 10, AmountCents: 1_000}}
	p.ManualAdjustments = []schedule.Adjustment{{Day: 10, AmountCents: -400, Note: "correction"}}

	deposits, _, _ := schedule.PrefixArrays(p)
	assert.Equal(t, int64(600), deposits[10])
}

func TestPreRentBaseDay30_ExcludesDay30Bill(t *testing.T) {
	p := minimalPlan()
	deposits, bills, _ := schedule.PrefixArrays(p)
	pre30 := schedule.PreRentBaseDay30(p, deposits, bills)
	// The day-30 rent bill itself must not be subtracted yet; this is the
	// pre-rent balance the guard compares against.
	assert.Equal(t, p.StartBalanceCents, pre30)
}
