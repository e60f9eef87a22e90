package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/dispatch"
	"github.com/warp/cashflow-scheduler/render"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/validate"
)

func solvedPlan(t *testing.T) (schedule.Plan, schedule.Schedule, schedule.Diagnostics) {
	t.Helper()
	p := schedule.NewPlan(actionset.Minimal())
	p.StartBalanceCents = 200_000
	p.TargetEndCents = 150_000
	p.BandCents = 20_000
	p.RentGuardCents = 50_000
	p.Bills = []schedule.Bill{{Day: 30, Name: "rent", AmountCents: 90_000}}

	s, diag, err := dispatch.Solve(context.Background(), p, dispatch.ModePrimary, dispatch.DefaultConfig())
	require.NoError(t, err)
	return p, s, diag
}

func TestJSON_RoundTripsLedgerLength(t *testing.T) {
	p, s, diag := solvedPlan(t)
	report := validate.Validate(p, s)
	dto := render.BuildDTO(p, s, diag, report)

	var buf bytes.Buffer
	require.NoError(t, render.JSON(&buf, dto))

	var decoded render.ScheduleDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Ledger, schedule.Horizon)
	assert.Equal(t, dto.FinalClosing, decoded.FinalClosing)
}

func TestCSV_HasHeaderAndThirtyRows(t *testing.T) {
	p, s, diag := solvedPlan(t)
	report := validate.Validate(p, s)
	dto := render.BuildDTO(p, s, diag, report)

	var buf bytes.Buffer
	require.NoError(t, render.CSV(&buf, dto))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, schedule.Horizon+1)
	assert.Equal(t, "day,opening,deposits,action,net,bills,closing", lines[0])
}

func TestMarkdown_ContainsFinalClosing(t *testing.T) {
	p, s, diag := solvedPlan(t)
	report := validate.Validate(p, s)
	dto := render.BuildDTO(p, s, diag, report)

	var buf bytes.Buffer
	require.NoError(t, render.Markdown(&buf, dto))
	assert.Contains(t, buf.String(), dto.FinalClosing)
}
