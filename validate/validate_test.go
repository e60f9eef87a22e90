package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/validate"
)

func basePlan() schedule.Plan {
	p := schedule.NewPlan(actionset.Minimal())
	p.StartBalanceCents = 100_000
	p.TargetEndCents = 100_000
	p.BandCents = 10_000
	p.RentGuardCents = 0
	return p
}

// offOffAlternating gives two off days out of every four (period 4, well
// under the 7-day window width), which guarantees an adjacent off-off
// pair lands fully inside every rolling 7-day window.
func offOffAlternating(p schedule.Plan) [schedule.Horizon]actionset.Symbol {
	off, _ := p.Actions.SymbolByName("Off")
	work, _ := p.Actions.SymbolByName("Work")
	var a [schedule.Horizon]actionset.Symbol
	for i := range a {
		if i%4 == 2 || i%4 == 3 {
			a[i] = off
		} else {
			a[i] = work
		}
	}
	a[0] = work // day 1 must work
	return a
}

func TestValidate_WellFormedSchedule_Passes(t *testing.T) {
	p := basePlan()
	actions := offOffAlternating(p)
	ledger := schedule.BuildLedger(p, actions)
	// Target/band are set to exactly what this fixed action vector
	// produces, since this test exercises the validator in isolation
	// rather than a solver's band-constrained search.
	p.TargetEndCents = ledger[schedule.Horizon-1].ClosingCents
	p.BandCents = 0
	s := schedule.Schedule{Actions: actions, Ledger: ledger, FinalClosingCents: ledger[schedule.Horizon-1].ClosingCents}

	report := validate.Validate(p, s)
	require.True(t, report.OK, "checks: %+v", report.Checks)
}

func TestValidate_OffOffRuleViolation_Fails(t *testing.T) {
	p := basePlan()
	work, _ := p.Actions.SymbolByName("Work")
	var actions [schedule.Horizon]actionset.Symbol
	for i := range actions {
		actions[i] = work // no off day anywhere: violates every 7-day window
	}
	ledger := schedule.BuildLedger(p, actions)
	s := schedule.Schedule{Actions: actions, Ledger: ledger, FinalClosingCents: ledger[schedule.Horizon-1].ClosingCents}

	report := validate.Validate(p, s)
	assert.False(t, report.OK)

	found := false
	for _, c := range report.Checks {
		if c.Name == "7-day Off,Off present" {
			found = true
			assert.False(t, c.Pass)
		}
	}
	assert.True(t, found)
}

func TestValidate_LocksHonored(t *testing.T) {
	p := basePlan()
	off, _ := p.Actions.SymbolByName("Off")
	p.ActionLocks[14] = off // day 15 locked to Off

	actions := offOffAlternating(p)
	actions[14] = off

	ledger := schedule.BuildLedger(p, actions)
	s := schedule.Schedule{Actions: actions, Ledger: ledger, FinalClosingCents: ledger[schedule.Horizon-1].ClosingCents}

	report := validate.Validate(p, s)
	for _, c := range report.Checks {
		if c.Name == "Locks honored" {
			assert.True(t, c.Pass)
		}
	}
}
