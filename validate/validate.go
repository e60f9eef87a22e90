/*
Package validate independently re-checks every feasibility rule on an
emitted Schedule, without touching solver internals. It is the common
consumer both solvers feed and the dispatcher's last line of defense
before returning a result to the caller.
*/
package validate

import (
	"fmt"

	"github.com/warp/cashflow-scheduler/schedule"
)

// Check is one named pass/fail assertion with a human-readable detail.
type Check struct {
	Name   string
	Pass   bool
	Detail string
}

// Report is the conjunction of all checks, in the fixed order they ran.
type Report struct {
	OK     bool
	Checks []Check
}

// Validate runs all seven independent checks in a fixed order and returns
// their conjunction. Check order is deterministic so callers can rely on
// Checks[i] always being the same named rule.
func Validate(p schedule.Plan, s schedule.Schedule) Report {
	deposits, bills, _ := schedule.PrefixArrays(p)
	var checks []Check

	checks = append(checks, actionsValid(p, s))
	checks = append(checks, nonNegativeBalances(s))
	checks = append(checks, finalWithinBand(p, s))
	checks = append(checks, dayThirtyRentGuard(p, s, deposits, bills))
	checks = append(checks, offOffEveryWindow(p, s))
	checks = append(checks, dayOneWorking(p, s))
	checks = append(checks, locksHonored(p, s))

	ok := true
	for _, c := range checks {
		if !c.Pass {
			ok = false
			break
		}
	}
	return Report{OK: ok, Checks: checks}
}

func actionsValid(p schedule.Plan, s schedule.Schedule) Check {
	for _, a := range s.Actions {
		if !p.Actions.Valid(a) {
			return Check{Name: "Actions valid", Pass: false, Detail: fmt.Sprintf("unknown symbol %d", a)}
		}
	}
	return Check{Name: "Actions valid", Pass: true, Detail: "all actions in alphabet"}
}

func nonNegativeBalances(s schedule.Schedule) Check {
	for _, row := range s.Ledger {
		if row.ClosingCents < 0 {
			return Check{Name: "Non-negative balances", Pass: false, Detail: fmt.Sprintf("day %d closing=%d", row.Day, row.ClosingCents)}
		}
	}
	return Check{Name: "Non-negative balances", Pass: true, Detail: "closing>=0 for all t"}
}

func finalWithinBand(p schedule.Plan, s schedule.Schedule) Check {
	lo := p.TargetEndCents - p.BandCents
	hi := p.TargetEndCents + p.BandCents
	ok := s.FinalClosingCents >= lo && s.FinalClosingCents <= hi
	return Check{Name: "Final within band", Pass: ok, Detail: fmt.Sprintf("%d in [%d,%d]", s.FinalClosingCents, lo, hi)}
}

func dayThirtyRentGuard(p schedule.Plan, s schedule.Schedule, deposits, bills [schedule.Horizon + 1]int64) Check {
	pre30 := schedule.PreRentBaseDay30(p, deposits, bills)
	var netTotal int64
	for _, a := range s.Actions {
		netTotal += p.Actions.NetCentsOf(a)
	}
	preRentBalance := pre30 + netTotal
	ok := preRentBalance >= p.RentGuardCents
	return Check{Name: "Day-30 pre-rent guard", Pass: ok, Detail: fmt.Sprintf("%d >= %d", preRentBalance, p.RentGuardCents)}
}

func offOffEveryWindow(p schedule.Plan, s schedule.Schedule) Check {
	off := make([]bool, schedule.Horizon)
	for i, a := range s.Actions {
		off[i] = p.Actions.IsOff(a)
	}
	for start := 0; start <= 23; start++ {
		found := false
		for i := start; i < start+6; i++ {
			if off[i] && off[i+1] {
				found = true
				break
			}
		}
		if !found {
			return Check{Name: "7-day Off,Off present", Pass: false, Detail: fmt.Sprintf("window starting day %d has no off-off pair", start+1)}
		}
	}
	return Check{Name: "7-day Off,Off present", Pass: true, Detail: "every 7-day window"}
}

func dayOneWorking(p schedule.Plan, s schedule.Schedule) Check {
	if _, locked := p.LockedAt(1); locked {
		return Check{Name: "Day-1 working action", Pass: true, Detail: "overridden by lock"}
	}
	ok := p.Actions.IsWork(s.Actions[0])
	return Check{Name: "Day-1 working action", Pass: ok, Detail: fmt.Sprintf("day1=%s", p.Actions.NameOf(s.Actions[0]))}
}

func locksHonored(p schedule.Plan, s schedule.Schedule) Check {
	for day := 1; day <= schedule.Horizon; day++ {
		locked, ok := p.LockedAt(day)
		if !ok {
			continue
		}
		if s.Actions[day-1] != locked {
			return Check{Name: "Locks honored", Pass: false, Detail: fmt.Sprintf("day %d expected %s got %s", day, p.Actions.NameOf(locked), p.Actions.NameOf(s.Actions[day-1]))}
		}
	}
	return Check{Name: "Locks honored", Pass: true, Detail: "all locks honored"}
}
