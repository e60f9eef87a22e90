package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/dispatch"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/solver/cp"
)

func minimalPlan() schedule.Plan {
	p := schedule.NewPlan(actionset.Minimal())
	p.StartBalanceCents = 200_000
	p.TargetEndCents = 150_000
	p.BandCents = 20_000
	p.RentGuardCents = 50_000
	p.Bills = []schedule.Bill{{Day: 30, Name: "rent", AmountCents: 90_000}}
	return p
}

func TestSolve_Primary(t *testing.T) {
	p := minimalPlan()
	s, diag, err := dispatch.Solve(context.Background(), p, dispatch.ModePrimary, dispatch.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "dp", diag.SolverName)
	assert.NotZero(t, s.FinalClosingCents)
}

func TestSolve_Secondary(t *testing.T) {
	p := minimalPlan()
	s, diag, err := dispatch.Solve(context.Background(), p, dispatch.ModeSecondary, dispatch.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "cp", diag.SolverName)
	assert.NotZero(t, s.FinalClosingCents)
}

func TestSolve_Auto_FallsBackWhenSecondaryDisabled(t *testing.T) {
	p := minimalPlan()
	cfg := dispatch.DefaultConfig()
	cfg.DisableSecondary = true

	s, diag, err := dispatch.Solve(context.Background(), p, dispatch.ModeAuto, cfg)
	require.NoError(t, err)
	assert.Equal(t, "dp", diag.SolverName)
	assert.NotEmpty(t, diag.FallbackReason)
	assert.NotZero(t, s.FinalClosingCents)
}

func TestSolve_Secondary_BackendDisabled(t *testing.T) {
	p := minimalPlan()
	cfg := dispatch.DefaultConfig()
	cfg.DisableSecondary = true

	_, _, err := dispatch.Solve(context.Background(), p, dispatch.ModeSecondary, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrBackendUnavailable)
}

func TestSolve_Infeasible_DoesNotFallBack(t *testing.T) {
	p := minimalPlan()
	p.TargetEndCents = 150_001
	p.BandCents = 0

	_, _, err := dispatch.Solve(context.Background(), p, dispatch.ModeAuto, dispatch.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, cp.ErrInfeasible)
}

func TestSolve_InvalidPlan_RejectedBeforeSolving(t *testing.T) {
	p := minimalPlan()
	p.StartBalanceCents = -1

	_, _, err := dispatch.Solve(context.Background(), p, dispatch.ModePrimary, dispatch.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrInvalidPlan)
}
