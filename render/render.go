/*
Package render produces textual renderings of a solved Schedule: the
canonical JSON wire structure plus md/csv export formats.

DTO naming follows the teacher's api/dto.go convention; JSON encoding
follows its writeJSON idiom, generalized to a reusable function instead
of an http.ResponseWriter-bound helper.
*/
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/warp/cashflow-scheduler/money"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/validate"
)

// DayLedgerDTO is one ledger row in the canonical wire format.
type DayLedgerDTO struct {
	Day      int    `json:"day"`
	Opening  string `json:"opening"`
	Deposits string `json:"deposits"`
	Action   string `json:"action"`
	Net      string `json:"net"`
	Bills    string `json:"bills"`
	Closing  string `json:"closing"`
}

// CheckDTO is one named validator assertion. MarshalJSON renders it as
// the 3-element tuple spec.md §6 specifies ("[name, ok, detail]")
// rather than an object, so the wire format matches exactly.
type CheckDTO struct {
	Name   string
	OK     bool
	Detail string
}

func (c CheckDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Name, c.OK, c.Detail})
}

func (c *CheckDTO) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &c.Name); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[1], &c.OK); err != nil {
		return err
	}
	return json.Unmarshal(tuple[2], &c.Detail)
}

// SolverDTO carries the diagnostics block of the wire contract.
type SolverDTO struct {
	Name           string   `json:"name"`
	Statuses       []string `json:"statuses"`
	Seconds        float64  `json:"seconds"`
	FallbackReason string   `json:"fallback_reason,omitempty"`
}

// ScheduleDTO is the canonical JSON structure every export format
// renders, matching spec.md §6's solve-response schema exactly.
type ScheduleDTO struct {
	Actions      []string       `json:"actions"`
	Objective    []int64        `json:"objective"`
	FinalClosing string         `json:"final_closing"`
	Ledger       []DayLedgerDTO `json:"ledger"`
	Checks       []CheckDTO     `json:"checks"`
	Solver       SolverDTO      `json:"solver"`
}

// BuildDTO assembles the canonical DTO from a solved Schedule, its
// validate.Report, and solver Diagnostics.
func BuildDTO(plan schedule.Plan, s schedule.Schedule, diag schedule.Diagnostics, report validate.Report) ScheduleDTO {
	dto := ScheduleDTO{
		Actions:      make([]string, len(s.Actions)),
		Objective:    s.Objective,
		FinalClosing: money.CentsToString(s.FinalClosingCents),
		Ledger:       make([]DayLedgerDTO, len(s.Ledger)),
		Checks:       make([]CheckDTO, len(report.Checks)),
		Solver: SolverDTO{
			Name:           diag.SolverName,
			Statuses:       diag.StageStatuses,
			Seconds:        diag.Seconds,
			FallbackReason: diag.FallbackReason,
		},
	}
	for i, a := range s.Actions {
		dto.Actions[i] = plan.Actions.NameOf(a)
	}
	for i, row := range s.Ledger {
		dto.Ledger[i] = DayLedgerDTO{
			Day:      row.Day,
			Opening:  money.CentsToString(row.OpeningCents),
			Deposits: money.CentsToString(row.DepositCents),
			Action:   plan.Actions.NameOf(row.Action),
			Net:      money.CentsToString(row.NetCents),
			Bills:    money.CentsToString(row.BillsCents),
			Closing:  money.CentsToString(row.ClosingCents),
		}
	}
	for i, c := range report.Checks {
		dto.Checks[i] = CheckDTO{Name: c.Name, OK: c.Pass, Detail: c.Detail}
	}
	return dto
}

// JSON writes the canonical Schedule structure as indented JSON.
func JSON(w io.Writer, dto ScheduleDTO) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dto)
}

// CSV writes one row per day: day, opening, deposits, action, net,
// bills, closing.
func CSV(w io.Writer, dto ScheduleDTO) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"day", "opening", "deposits", "action", "net", "bills", "closing"}); err != nil {
		return err
	}
	for _, row := range dto.Ledger {
		if err := cw.Write([]string{
			strconv.Itoa(row.Day), row.Opening, row.Deposits, row.Action, row.Net, row.Bills, row.Closing,
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// Markdown renders a human-readable table plus the objective and final
// checks, in lieu of a dedicated markdown library (none of the example
// repos import one for tabular output, so this follows the teacher's
// plain fmt.Fprintf templating seen in its CLI-facing code).
func Markdown(w io.Writer, dto ScheduleDTO) error {
	if _, err := fmt.Fprintf(w, "# Schedule (%s)\n\n", dto.Solver.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Objective: `%v`  \nFinal closing: **%s**\n\n", dto.Objective, dto.FinalClosing); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "| Day | Opening | Deposits | Action | Net | Bills | Closing |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|---|---|---|---|---|---|---|"); err != nil {
		return err
	}
	for _, row := range dto.Ledger {
		if _, err := fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %s | %s |\n",
			row.Day, row.Opening, row.Deposits, row.Action, row.Net, row.Bills, row.Closing); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\n## Checks"); err != nil {
		return err
	}
	for _, c := range dto.Checks {
		mark := "✓"
		if !c.OK {
			mark = "✗"
		}
		if _, err := fmt.Fprintf(w, "- %s %s — %s\n", mark, c.Name, c.Detail); err != nil {
			return err
		}
	}
	return nil
}
