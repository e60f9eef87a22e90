package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/schedule"
)

func TestValidate_RejectsLockRangeWithNoBackingActionLock(t *testing.T) {
	p := minimalPlan()
	p.Locks = []schedule.Lock{{StartDay: 10, EndDay: 12}}

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrInvalidPlan)
}

func TestValidate_AcceptsLockRangeBackedByActionLocks(t *testing.T) {
	p := minimalPlan()
	off, _ := p.Actions.SymbolByName("Off")
	for day := 10; day <= 12; day++ {
		p.ActionLocks[day-1] = off
	}
	p.Locks = []schedule.Lock{{StartDay: 10, EndDay: 12}}

	assert.NoError(t, p.Validate())
}

func TestValidate_RejectsMalformedLockRange(t *testing.T) {
	p := minimalPlan()
	p.Locks = []schedule.Lock{{StartDay: 20, EndDay: 5}}

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrInvalidPlan)
}

func TestValidate_RejectsNegativeStartBalance(t *testing.T) {
	p := schedule.NewPlan(actionset.Minimal())
	p.StartBalanceCents = -1

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrInvalidPlan)
}
