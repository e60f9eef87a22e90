/*
Package dispatch is the single entry point that chooses between the
primary (DP) and secondary (CP) solvers, always verifying the chosen
action vector with package validate before returning it.

Grounded on api/handlers.go's error-classification style (structured
HTTP status buckets) generalized to dispatch's own error kinds, and
logged with github.com/rs/zerolog for structured per-stage solver
diagnostics.
*/
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/solver/cp"
	"github.com/warp/cashflow-scheduler/solver/dp"
	"github.com/warp/cashflow-scheduler/validate"
)

// Mode selects which solver backend handles a Solve call.
type Mode string

const (
	ModeAuto      Mode = "auto"
	ModePrimary   Mode = "primary"
	ModeSecondary Mode = "secondary"
)

// ErrSolverBug marks a hard fault: the chosen action vector failed
// independent validation. Never recovered.
var ErrSolverBug = errors.New("dispatch: chosen schedule failed validation")

// SolverBugError carries the failing validate.Report for diagnostics.
type SolverBugError struct {
	Report validate.Report
}

func (e *SolverBugError) Error() string {
	for _, c := range e.Report.Checks {
		if !c.Pass {
			return fmt.Sprintf("dispatch: solver bug: %s failed: %s", c.Name, c.Detail)
		}
	}
	return "dispatch: solver bug: validation failed"
}

func (e *SolverBugError) Unwrap() error { return ErrSolverBug }

// ErrBackendUnavailable is returned by secondary mode when the CP
// backend has been administratively disabled (see Config.DisableSecondary).
var ErrBackendUnavailable = errors.New("dispatch: secondary backend unavailable")

// Config bundles both solvers' tuning knobs and the diagnostics logger.
type Config struct {
	DPOptions dp.Options
	CPConfig  cp.Config

	// DisableSecondary simulates the CP backend being absent at runtime,
	// the one trigger for BackendUnavailable in this deployment: the CP
	// solver here is a from-scratch Go implementation with no external
	// binary or library dependency, so it is otherwise always present.
	DisableSecondary bool

	Logger zerolog.Logger
}

// DefaultConfig returns the reference's documented CP defaults with a
// no-op logger; callers typically override Logger.
func DefaultConfig() Config {
	return Config{CPConfig: cp.DefaultConfig(), Logger: zerolog.Nop()}
}

// Solve is dispatch's single entry point.
func Solve(ctx context.Context, plan schedule.Plan, mode Mode, cfg Config) (schedule.Schedule, schedule.Diagnostics, error) {
	if err := plan.Validate(); err != nil {
		return schedule.Schedule{}, schedule.Diagnostics{}, err
	}

	switch mode {
	case ModePrimary:
		return solvePrimary(plan, cfg)
	case ModeSecondary:
		return solveSecondary(ctx, plan, cfg)
	case ModeAuto, "":
		return solveAuto(ctx, plan, cfg)
	default:
		return schedule.Schedule{}, schedule.Diagnostics{}, fmt.Errorf("dispatch: unknown mode %q", mode)
	}
}

func solvePrimary(plan schedule.Plan, cfg Config) (schedule.Schedule, schedule.Diagnostics, error) {
	start := time.Now()
	s, err := dp.Solve(plan, cfg.DPOptions)
	diag := schedule.Diagnostics{SolverName: "dp", Seconds: time.Since(start).Seconds()}
	if err != nil {
		cfg.Logger.Info().Err(err).Str("solver", "dp").Msg("primary solve failed")
		return schedule.Schedule{}, diag, err
	}
	return finalize(plan, s, diag, cfg)
}

func solveSecondary(ctx context.Context, plan schedule.Plan, cfg Config) (schedule.Schedule, schedule.Diagnostics, error) {
	if cfg.DisableSecondary {
		return schedule.Schedule{}, schedule.Diagnostics{}, ErrBackendUnavailable
	}
	start := time.Now()
	s, stages, err := cp.Solve(ctx, plan, cfg.CPConfig)
	diag := schedule.Diagnostics{SolverName: "cp", Seconds: time.Since(start).Seconds(), StageStatuses: stageStatusStrings(stages)}
	if err != nil {
		cfg.Logger.Info().Err(err).Str("solver", "cp").Strs("stages", diag.StageStatuses).Msg("secondary solve failed")
		return schedule.Schedule{}, diag, err
	}
	return finalize(plan, s, diag, cfg)
}

func solveAuto(ctx context.Context, plan schedule.Plan, cfg Config) (schedule.Schedule, schedule.Diagnostics, error) {
	s, diag, secondaryErr := solveSecondary(ctx, plan, cfg)
	if secondaryErr == nil {
		return s, diag, nil
	}
	if errors.Is(secondaryErr, cp.ErrInfeasible) {
		// Infeasibility is a property of the plan, not the backend; it
		// never triggers a fallback to the other solver.
		return schedule.Schedule{}, diag, secondaryErr
	}
	if errors.Is(secondaryErr, ErrSolverBug) {
		// A solver bug is a hard fault; it is never recovered by falling back.
		return schedule.Schedule{}, diag, secondaryErr
	}

	cfg.Logger.Warn().Err(secondaryErr).Msg("auto mode falling back to primary solver")
	s, fallbackDiag, primaryErr := solvePrimary(plan, cfg)
	fallbackDiag.FallbackReason = "secondary solver unavailable: " + secondaryErr.Error()
	return s, fallbackDiag, primaryErr
}

func finalize(plan schedule.Plan, s schedule.Schedule, diag schedule.Diagnostics, cfg Config) (schedule.Schedule, schedule.Diagnostics, error) {
	report := validate.Validate(plan, s)
	if !report.OK {
		cfg.Logger.Error().Str("solver", diag.SolverName).Msg("solver produced a schedule that failed validation")
		return schedule.Schedule{}, diag, &SolverBugError{Report: report}
	}
	return s, diag, nil
}

func stageStatusStrings(stages []cp.StageResult) []string {
	out := make([]string, len(stages))
	for i, st := range stages {
		out[i] = fmt.Sprintf("%s=%s(%d)", st.Name, st.Status, st.Value)
	}
	return out
}
