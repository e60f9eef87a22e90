/*
main.go - one-shot CLI entry point

Reads a Plan JSON file, solves it (or resumes it mid-month), and writes
the result in one of json/csv/md. Flag parsing follows the teacher's
cmd/server/main.go idiom; there is no long-running server loop here, so
no signal handling or graceful shutdown is needed.

EXIT CODES:
  0  solved successfully
  1  unexpected error (bad flags, unreadable file, internal fault)
  2  plan invalid or infeasible
*/
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/warp/cashflow-scheduler/dispatch"
	"github.com/warp/cashflow-scheduler/httpapi"
	"github.com/warp/cashflow-scheduler/money"
	"github.com/warp/cashflow-scheduler/render"
	"github.com/warp/cashflow-scheduler/resume"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/solver/cp"
	"github.com/warp/cashflow-scheduler/solver/dp"
	"github.com/warp/cashflow-scheduler/validate"
)

func main() {
	planPath := flag.String("plan", "", "path to a Plan JSON file")
	solverName := flag.String("solver", "auto", "solver mode: auto, primary, or secondary")
	format := flag.String("format", "json", "output format: json, csv, or md")
	resumeDay := flag.Int("resume-day", 0, "if set, re-plan from this day forward")
	eodAmount := flag.Float64("eod-amount", 0, "actual end-of-day balance on -resume-day")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("no .env file found, using environment variables")
	}

	os.Exit(run(*planPath, *solverName, *format, *resumeDay, *eodAmount))
}

func run(planPath, solverName, format string, resumeDay int, eodAmount float64) int {
	if planPath == "" {
		fmt.Fprintln(os.Stderr, "cashflowctl: -plan is required")
		return 1
	}

	raw, err := os.ReadFile(planPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cashflowctl: reading plan: %v\n", err)
		return 1
	}

	var dto httpapi.PlanDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		fmt.Fprintf(os.Stderr, "cashflowctl: parsing plan: %v\n", err)
		return 1
	}
	dto.Alphabet = firstNonEmpty(dto.Alphabet, "minimal")

	plan, err := dto.ToPlan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cashflowctl: invalid plan: %v\n", err)
		return 2
	}

	cfg := dispatch.DefaultConfig()
	ctx := context.Background()
	mode := dispatch.Mode(solverName)

	var s schedule.Schedule
	var diag schedule.Diagnostics

	if resumeDay > 0 {
		cents, cerr := money.ToCents(eodAmount)
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "cashflowctl: invalid -eod-amount: %v\n", cerr)
			return 1
		}
		s, diag, err = resume.Resume(ctx, plan, resumeDay, cents, mode, cfg)
	} else {
		s, diag, err = dispatch.Solve(ctx, plan, mode, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cashflowctl: solve failed: %v\n", err)
		if errors.Is(err, cp.ErrInfeasible) || errors.Is(err, dp.ErrInfeasible) || errors.Is(err, schedule.ErrInvalidPlan) {
			return 2
		}
		return 1
	}

	report := validate.Validate(plan, s)
	out := render.BuildDTO(plan, s, diag, report)

	switch format {
	case "json":
		err = render.JSON(os.Stdout, out)
	case "csv":
		err = render.CSV(os.Stdout, out)
	case "md":
		err = render.Markdown(os.Stdout, out)
	default:
		fmt.Fprintf(os.Stderr, "cashflowctl: unknown -format %q\n", format)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cashflowctl: render failed: %v\n", err)
		return 1
	}
	return 0
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
