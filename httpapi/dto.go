/*
dto.go - wire structures for the httpapi package

Mirrors the teacher's api/dto.go naming convention (*DTO for payloads
read from or written to JSON) and decouples the wire contract from the
internal schedule.Plan representation.
*/
package httpapi

import (
	"fmt"

	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/money"
	"github.com/warp/cashflow-scheduler/schedule"
)

// DepositDTO is one deposit entry in the ingestion schema.
type DepositDTO struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

// BillDTO is one bill entry in the ingestion schema.
type BillDTO struct {
	Day    int     `json:"day"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// AdjustmentDTO is one signed manual adjustment in the ingestion schema.
type AdjustmentDTO struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// PlanDTO is spec.md §6's plan ingestion JSON schema.
type PlanDTO struct {
	StartBalance float64             `json:"start_balance"`
	TargetEnd    float64             `json:"target_end"`
	Band         float64             `json:"band"`
	RentGuard    float64             `json:"rent_guard"`
	Deposits     []DepositDTO        `json:"deposits"`
	Bills        []BillDTO           `json:"bills"`
	Actions      []*string           `json:"actions"`
	Adjustments  []AdjustmentDTO     `json:"manual_adjustments"`
	Locks        [][2]int            `json:"locks"`
	Metadata     map[string]string   `json:"metadata"`
	// Alphabet selects the deployment's action table; "minimal" (default)
	// or "historical". Not part of spec.md's ingestion schema verbatim,
	// but required since this module supports both deployment variants
	// from the Open Question in spec.md §9.
	Alphabet string `json:"alphabet,omitempty"`
}

// ToPlan converts the wire representation into a schedule.Plan,
// converting every monetary field through package money at the
// boundary so rounding happens exactly once.
func (dto PlanDTO) ToPlan() (schedule.Plan, error) {
	table, err := resolveAlphabet(dto.Alphabet)
	if err != nil {
		return schedule.Plan{}, err
	}
	plan := schedule.NewPlan(table)

	if plan.StartBalanceCents, err = money.ToCents(dto.StartBalance); err != nil {
		return schedule.Plan{}, err
	}
	if plan.TargetEndCents, err = money.ToCents(dto.TargetEnd); err != nil {
		return schedule.Plan{}, err
	}
	if plan.BandCents, err = money.ToCents(dto.Band); err != nil {
		return schedule.Plan{}, err
	}
	if plan.RentGuardCents, err = money.ToCents(dto.RentGuard); err != nil {
		return schedule.Plan{}, err
	}

	for _, d := range dto.Deposits {
		cents, err := money.ToCents(d.Amount)
		if err != nil {
			return schedule.Plan{}, err
		}
		plan.Deposits = append(plan.Deposits, schedule.Deposit{Day: d.Day, AmountCents: cents})
	}
	for _, b := range dto.Bills {
		cents, err := money.ToCents(b.Amount)
		if err != nil {
			return schedule.Plan{}, err
		}
		plan.Bills = append(plan.Bills, schedule.Bill{Day: b.Day, Name: b.Name, AmountCents: cents})
	}
	for _, a := range dto.Adjustments {
		cents, err := money.ToCents(a.Amount)
		if err != nil {
			return schedule.Plan{}, err
		}
		plan.ManualAdjustments = append(plan.ManualAdjustments, schedule.Adjustment{Day: a.Day, AmountCents: cents, Note: a.Note})
	}
	for _, l := range dto.Locks {
		plan.Locks = append(plan.Locks, schedule.Lock{StartDay: l[0], EndDay: l[1]})
	}

	if len(dto.Actions) > 0 {
		if len(dto.Actions) != schedule.Horizon {
			return schedule.Plan{}, &schedule.InvalidPlanError{Reason: fmt.Sprintf("actions must have length %d, got %d", schedule.Horizon, len(dto.Actions))}
		}
		for i, name := range dto.Actions {
			if name == nil {
				continue
			}
			sym, err := table.SymbolByName(*name)
			if err != nil {
				return schedule.Plan{}, err
			}
			plan.ActionLocks[i] = sym
		}
	}

	plan.Metadata = dto.Metadata
	return plan, plan.Validate()
}

func resolveAlphabet(name string) (actionset.Table, error) {
	switch name {
	case "", "minimal":
		return actionset.Minimal(), nil
	case "historical":
		return actionset.Historical(), nil
	default:
		return actionset.Table{}, fmt.Errorf("unknown alphabet %q", name)
	}
}

// SolveRequestDTO is the POST /solve and GET /export/{format} request
// body: optional solver mode plus the embedded plan.
type SolveRequestDTO struct {
	Solver string  `json:"solver"`
	Plan   PlanDTO `json:"plan"`
}

// ResumeRequestDTO is the POST /resume request body.
type ResumeRequestDTO struct {
	Day       int     `json:"day"`
	EODAmount float64 `json:"eod_amount"`
	Plan      PlanDTO `json:"plan"`
}

// ErrorDTO is the error response body for every failure case.
type ErrorDTO struct {
	Error string `json:"error"`
}
