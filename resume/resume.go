/*
Package resume implements the mid-month re-plan: lock everything already
committed through day d, inject a corrective adjustment so day d's
closing balance matches what actually happened, and re-optimize the
remaining days under the original rules.

Ported from the reference implementation's cashflow/engines/dp.py
solve_from, generalized to call the dispatcher (so resume honors
auto/primary/secondary mode selection) and to inject the exact
correcting Adjustment rather than only locking the prefix.
*/
package resume

import (
	"context"
	"fmt"

	"github.com/warp/cashflow-scheduler/dispatch"
	"github.com/warp/cashflow-scheduler/schedule"
)

// ErrInvalidDay is returned when day is outside 1..schedule.Horizon.
type ErrInvalidDay struct {
	Day int
}

func (e *ErrInvalidDay) Error() string {
	return fmt.Sprintf("resume: day %d out of range [1,%d]", e.Day, schedule.Horizon)
}

// Resume computes a baseline schedule, fixes days 1..day to that
// baseline, corrects day d's closing balance to desiredClosingCents via
// an injected Adjustment, and re-solves the remainder.
func Resume(ctx context.Context, plan schedule.Plan, day int, desiredClosingCents int64, mode dispatch.Mode, cfg dispatch.Config) (schedule.Schedule, schedule.Diagnostics, error) {
	if day < 1 || day > schedule.Horizon {
		return schedule.Schedule{}, schedule.Diagnostics{}, &ErrInvalidDay{Day: day}
	}

	baseline, _, err := dispatch.Solve(ctx, plan, mode, cfg)
	if err != nil {
		return schedule.Schedule{}, schedule.Diagnostics{}, fmt.Errorf("resume: baseline solve failed: %w", err)
	}

	baselineClosing := baseline.Ledger[day-1].ClosingCents
	corrected := withBaselineLocked(plan, baseline, day, desiredClosingCents-baselineClosing)

	result, diag, err := dispatch.Solve(ctx, corrected, mode, cfg)
	if err != nil {
		return schedule.Schedule{}, schedule.Diagnostics{}, fmt.Errorf("resume: re-solve failed: %w", err)
	}

	if result.Ledger[day-1].ClosingCents != desiredClosingCents {
		return schedule.Schedule{}, diag, fmt.Errorf("resume: re-solved day %d closing %d != desired %d",
			day, result.Ledger[day-1].ClosingCents, desiredClosingCents)
	}
	for i := 0; i < day; i++ {
		if result.Actions[i] != baseline.Actions[i] {
			return schedule.Schedule{}, diag, fmt.Errorf("resume: day %d action diverged from baseline after re-solve", i+1)
		}
	}

	return result, diag, nil
}

// withBaselineLocked returns a copy of plan with days 1..day locked to
// baseline's actions and a correcting Adjustment appended on day.
func withBaselineLocked(plan schedule.Plan, baseline schedule.Schedule, day int, correctionCents int64) schedule.Plan {
	next := plan
	next.Deposits = append([]schedule.Deposit(nil), plan.Deposits...)
	next.Bills = append([]schedule.Bill(nil), plan.Bills...)
	next.ManualAdjustments = append([]schedule.Adjustment(nil), plan.ManualAdjustments...)
	next.Locks = append([]schedule.Lock(nil), plan.Locks...)

	for i := 0; i < day; i++ {
		next.ActionLocks[i] = baseline.Actions[i]
	}
	next.ManualAdjustments = append(next.ManualAdjustments, schedule.Adjustment{
		Day:         day,
		AmountCents: correctionCents,
		Note:        "resume",
	})
	return next
}
