/*
Package schedule holds the core data model shared by every solver: the
input Plan, the derived prefix arrays, the per-day ledger, and the emitted
Schedule/Diagnostics records.

All monetary fields are integer cents (see package money for the boundary
conversion). Days are 1-indexed; the horizon is fixed at 30.
*/
package schedule

import (
	"errors"
	"fmt"

	"github.com/warp/cashflow-scheduler/actionset"
)

// Horizon is the fixed schedule length in days.
const Horizon = 30

// ErrInvalidPlan is returned for structurally malformed plans: wrong
// actions length, out-of-range days, or contradictory locks.
var ErrInvalidPlan = errors.New("invalid plan")

// InvalidPlanError carries the specific reason a Plan failed validation.
type InvalidPlanError struct {
	Reason string
}

func (e *InvalidPlanError) Error() string { return fmt.Sprintf("invalid plan: %s", e.Reason) }
func (e *InvalidPlanError) Unwrap() error { return ErrInvalidPlan }

// Deposit is a one-time credit on a given day.
type Deposit struct {
	Day         int
	AmountCents int64
}

// Bill is a one-time debit on a given day.
type Bill struct {
	Day         int
	Name        string
	AmountCents int64
}

// Adjustment is a signed manual correction to the balance on a given day.
type Adjustment struct {
	Day         int
	AmountCents int64
	Note        string
}

// Lock pins an inclusive day range to whatever actions are already present
// in Plan.ActionLocks for that range; it is a declared superset of per-slot
// locks used for validation and diagnostics, not an independent source of
// truth for the locked action itself.
type Lock struct {
	StartDay int
	EndDay   int
}

// Plan is the immutable input to a solve.
type Plan struct {
	Actions actionset.Table

	StartBalanceCents int64
	TargetEndCents    int64
	BandCents         int64
	RentGuardCents    int64

	Deposits          []Deposit
	Bills             []Bill
	ManualAdjustments []Adjustment

	// ActionLocks[i] is a locked symbol for day i+1, or -1 if unlocked.
	ActionLocks [Horizon]actionset.Symbol

	Locks []Lock

	Metadata map[string]string
}

// NewPlan returns a Plan with the given action table and all locks unset.
func NewPlan(table actionset.Table) Plan {
	p := Plan{Actions: table}
	for i := range p.ActionLocks {
		p.ActionLocks[i] = -1
	}
	return p
}

// LockedAt returns the locked symbol for day (1-indexed) and whether a lock
// is present.
func (p Plan) LockedAt(day int) (actionset.Symbol, bool) {
	if day < 1 || day > Horizon {
		return 0, false
	}
	s := p.ActionLocks[day-1]
	if s < 0 {
		return 0, false
	}
	return s, true
}

// Validate checks structural well-formedness: day ranges, amount bounds,
// and lock consistency. It does not check feasibility (that's the
// solvers' job) or the off-off / band / rent-guard invariants (that's the
// validator's job on an emitted Schedule).
func (p Plan) Validate() error {
	if p.Actions.Len() < 2 {
		return &InvalidPlanError{Reason: "action table must have at least 2 symbols"}
	}
	if p.StartBalanceCents < 0 {
		return &InvalidPlanError{Reason: "start_balance_cents must be >= 0"}
	}
	if p.TargetEndCents < 0 || p.BandCents < 0 || p.RentGuardCents < 0 {
		return &InvalidPlanError{Reason: "target_end, band, and rent_guard must be >= 0"}
	}
	for _, d := range p.Deposits {
		if d.Day < 1 || d.Day > Horizon {
			return &InvalidPlanError{Reason: fmt.Sprintf("deposit day %d out of range", d.Day)}
		}
		if d.AmountCents < 0 {
			return &InvalidPlanError{Reason: "deposit amount must be >= 0"}
		}
	}
	for _, b := range p.Bills {
		if b.Day < 1 || b.Day > Horizon {
			return &InvalidPlanError{Reason: fmt.Sprintf("bill day %d out of range", b.Day)}
		}
		if b.AmountCents < 0 {
			return &InvalidPlanError{Reason: "bill amount must be >= 0"}
		}
	}
	for _, a := range p.ManualAdjustments {
		if a.Day < 1 || a.Day > Horizon {
			return &InvalidPlanError{Reason: fmt.Sprintf("adjustment day %d out of range", a.Day)}
		}
	}
	for i, s := range p.ActionLocks {
		if s >= 0 && !p.Actions.Valid(s) {
			return &InvalidPlanError{Reason: fmt.Sprintf("lock on day %d references unknown action symbol %d", i+1, s)}
		}
	}
	for _, l := range p.Locks {
		if l.StartDay < 1 || l.EndDay > Horizon || l.StartDay > l.EndDay {
			return &InvalidPlanError{Reason: fmt.Sprintf("lock range [%d,%d] is malformed", l.StartDay, l.EndDay)}
		}
		// Locks declares a superset of the per-slot locks in ActionLocks
		// (see the Lock doc comment); a range with no backing ActionLock
		// is a contradictory lock, not a real one.
		for day := l.StartDay; day <= l.EndDay; day++ {
			if _, locked := p.LockedAt(day); !locked {
				return &InvalidPlanError{Reason: fmt.Sprintf("lock range [%d,%d] declares day %d locked but no action is fixed there", l.StartDay, l.EndDay, day)}
			}
		}
	}
	return nil
}

// DayLedger is one day's deterministic balance projection.
type DayLedger struct {
	Day          int
	OpeningCents int64
	DepositCents int64
	Action       actionset.Symbol
	NetCents     int64
	BillsCents   int64
	ClosingCents int64
}

// Schedule is a fully concrete, emitted action vector plus its evaluation.
type Schedule struct {
	Actions           [Horizon]actionset.Symbol
	Objective         []int64
	FinalClosingCents int64
	Ledger            [Horizon]DayLedger
}

// Diagnostics records which solver produced a Schedule and how.
type Diagnostics struct {
	SolverName     string
	StageStatuses  []string
	Seconds        float64
	FallbackReason string
}
