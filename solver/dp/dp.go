/*
Package dp implements the primary feasibility-constrained dynamic-programming
solver: a layered DP over 30 days with a compact state encoding, transition
pruning, and back-pointer reconstruction.

Ported from the reference implementation's cashflow/engines/dp.py, with the
off_history Python tuple replaced by a fixed-width uint8 bitfield per the
spec's design note that the layer map must use a primitive key type.
*/
package dp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/warp/cashflow-scheduler/actionset"
	"github.com/warp/cashflow-scheduler/schedule"
)

// ErrInfeasible is returned when no layer-30 state satisfies the band.
var ErrInfeasible = errors.New("no feasible schedule found under constraints and band")

// Reason codes for InfeasibleError, identifying which pruning rule
// eliminated the last surviving candidate(s).
const (
	ReasonRentGuard    = "rent_guard"
	ReasonBand         = "band"
	ReasonOffOff       = "off_off"
	ReasonNonNegative  = "non_negative"
	ReasonNoLayerState = "no_layer30_state"
)

// InfeasibleError carries the last active constraint that eliminated
// candidates, for diagnostics.
type InfeasibleError struct {
	Reason string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("infeasible: last active constraint %q", e.Reason)
}
func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }

// Options configures optional scenario-exploration restrictions.
type Options struct {
	// ForbidWorkAfterDay1, when true, forbids any working action on days
	// 2..30 (a scenario-exploration restriction named in the spec's
	// design notes; ported from the reference's forbid_large_after_day1
	// flag).
	ForbidWorkAfterDay1 bool
}

type stateKey struct {
	offHistory uint8 // low 6 bits, oldest->newest
	offLen     uint8 // number of valid bits (0..6)
	prevWorked bool
	workUsed   int
	prefixNet  int64
}

type stateVal struct {
	adjWorkPairs int
	largeCount   int64 // cumulative days assigned the "L" symbol, if any
	penalty      int64 // cumulative action-class penalty
	backKey      stateKey
	backAction   actionset.Symbol
}

// dominanceLess reports whether a strictly dominates b under the
// cumulative-cost ordering used to keep one entry per state key: the
// spec names only adj_work_pairs for the minimal alphabet; extended
// alphabets additionally order by the two later-stage additive costs
// (large-payout days, action-class penalty), since |final-target| can't
// be evaluated until day 30 and so never participates in intra-layer
// dominance.
func (a stateVal) dominanceLess(b stateVal) bool {
	if a.adjWorkPairs != b.adjWorkPairs {
		return a.adjWorkPairs < b.adjWorkPairs
	}
	if a.largeCount != b.largeCount {
		return a.largeCount < b.largeCount
	}
	return a.penalty < b.penalty
}

// Solve runs the DP solver on plan and returns a fully concrete Schedule.
func Solve(plan schedule.Plan, opts Options) (schedule.Schedule, error) {
	table := plan.Actions
	deposits, bills, base := schedule.PrefixArrays(plan)
	pre30 := schedule.PreRentBaseDay30(plan, deposits, bills)

	baseEnd := base[schedule.Horizon]
	minNet := (plan.TargetEndCents - plan.BandCents) - baseEnd
	maxNet := (plan.TargetEndCents + plan.BandCents) - baseEnd
	maxDayNet := table.MaxNetCents()

	layers := make([]map[stateKey]stateVal, schedule.Horizon+1)
	layers[0] = map[stateKey]stateVal{{}: {}}

	worstReason := ReasonNoLayerState

	for day := 1; day <= schedule.Horizon; day++ {
		prevLayer := layers[day-1]
		cur := make(map[stateKey]stateVal, len(prevLayer)*table.Len())

		locked, isLocked := plan.LockedAt(day)
		allowed := allowedActions(table, day, isLocked, locked, opts)

		// Go map iteration order is randomized; process keys in a fixed
		// sort order so that dominance ties are broken the same way on
		// every run (required by the determinism invariant).
		for _, key := range sortedKeys(prevLayer) {
			val := prevLayer[key]
			for _, a := range allowed {
				willWork := table.IsWork(a)
				workUsedNew := key.workUsed
				if willWork {
					workUsedNew++
				}

				netNew := key.prefixNet + table.NetCentsOf(a)

				daysLeft := schedule.Horizon - day
				if netNew > maxNet {
					worstReason = ReasonBand
					continue
				}
				if netNew+maxDayNet*int64(daysLeft) < minNet {
					worstReason = ReasonBand
					continue
				}

				offToday := table.IsOff(a)
				windowBits, windowLen := appendBit(key.offHistory, key.offLen, offToday)
				if day >= 7 && !hasAdjacentPair(windowBits, windowLen) {
					worstReason = ReasonOffOff
					continue
				}
				newHistory, newLen := truncateTo6(windowBits, windowLen)

				closingT := base[day] + netNew
				if closingT < 0 {
					worstReason = ReasonNonNegative
					continue
				}

				if day == schedule.Horizon {
					if pre30+netNew < plan.RentGuardCents {
						worstReason = ReasonRentGuard
						continue
					}
				}

				adjNew := val.adjWorkPairs
				if key.prevWorked && willWork {
					adjNew++
				}
				largeNew := val.largeCount
				if large, ok := table.LargeIndex(); ok && a == large {
					largeNew++
				}
				penaltyNew := val.penalty + table.PenaltyOf(a)

				newKey := stateKey{
					offHistory: newHistory,
					offLen:     newLen,
					prevWorked: willWork,
					workUsed:   workUsedNew,
					prefixNet:  netNew,
				}
				newVal := stateVal{
					adjWorkPairs: adjNew,
					largeCount:   largeNew,
					penalty:      penaltyNew,
					backKey:      key,
					backAction:   a,
				}

				// Dominance: keep the entry minimizing (workUsed, adjWorkPairs,
				// largeCount, penalty). workUsed is already part of the key;
				// ties retain the incumbent for determinism.
				existing, exists := cur[newKey]
				if !exists || newVal.dominanceLess(existing) {
					cur[newKey] = newVal
				}
			}
		}
		layers[day] = cur
	}

	type candidate struct {
		objective []int64
		key       stateKey
		val       stateVal
	}
	extended := table.HasExtendedObjective()
	var best *candidate
	for _, key := range sortedKeys(layers[schedule.Horizon]) {
		val := layers[schedule.Horizon][key]
		finalClosing := base[schedule.Horizon] + key.prefixNet
		lo := plan.TargetEndCents - plan.BandCents
		hi := plan.TargetEndCents + plan.BandCents
		if finalClosing < lo || finalClosing > hi {
			continue
		}
		absDelta := finalClosing - plan.TargetEndCents
		if absDelta < 0 {
			absDelta = -absDelta
		}
		obj := []int64{int64(key.workUsed), int64(val.adjWorkPairs), absDelta}
		if extended {
			obj = append(obj, val.largeCount, val.penalty)
		}
		// Final selection is the minimum objective; ties are broken by the
		// total order of the state tuple (sortedKeys' order), so the first
		// equal-objective candidate encountered here wins deterministically.
		if best == nil || lessObjective(obj, best.objective) {
			best = &candidate{objective: obj, key: key, val: val}
		}
	}

	if best == nil {
		return schedule.Schedule{}, &InfeasibleError{Reason: worstReason}
	}

	actions := reconstruct(layers, best.key, best.val)
	ledger := schedule.BuildLedger(plan, actions)
	finalClosing := ledger[schedule.Horizon-1].ClosingCents

	return schedule.Schedule{
		Actions:           actions,
		Objective:         best.objective,
		FinalClosingCents: finalClosing,
		Ledger:            ledger,
	}, nil
}

func lessObjective(a, b []int64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// sortedKeys returns a layer's state keys in a fixed total order, so that
// dominance and final-selection ties are broken the same way on every run
// regardless of Go's randomized map iteration.
func sortedKeys(layer map[stateKey]stateVal) []stateKey {
	keys := make([]stateKey, 0, len(layer))
	for k := range layer {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.workUsed != b.workUsed {
			return a.workUsed < b.workUsed
		}
		if a.prefixNet != b.prefixNet {
			return a.prefixNet < b.prefixNet
		}
		if a.offHistory != b.offHistory {
			return a.offHistory < b.offHistory
		}
		if a.offLen != b.offLen {
			return a.offLen < b.offLen
		}
		return !a.prevWorked && b.prevWorked
	})
	return keys
}

func allowedActions(table actionset.Table, day int, isLocked bool, locked actionset.Symbol, opts Options) []actionset.Symbol {
	if isLocked {
		return []actionset.Symbol{locked}
	}
	if day == 1 {
		// Day 1 must be a working action; the lowest-index working
		// symbol is the canonical choice when several exist.
		for s := actionset.Symbol(0); int(s) < table.Len(); s++ {
			if table.IsWork(s) {
				return []actionset.Symbol{s}
			}
		}
	}
	if opts.ForbidWorkAfterDay1 && day > 1 {
		return []actionset.Symbol{table.OffIndex()}
	}
	out := make([]actionset.Symbol, table.Len())
	for i := range out {
		out[i] = actionset.Symbol(i)
	}
	return out
}

// appendBit appends today's off-flag to the oldest->newest bit sequence
// held in the low `length` bits of history, without dropping anything.
// The result may hold up to 7 bits (6 stored + today).
func appendBit(history uint8, length uint8, offToday bool) (bits uint8, newLength uint8) {
	bit := uint8(0)
	if offToday {
		bit = 1
	}
	return (history << 1) | bit, length + 1
}

// truncateTo6 drops the oldest bit once the window exceeds 6, keeping the
// fixed-width state key bounded.
func truncateTo6(bits uint8, length uint8) (newBits uint8, newLength uint8) {
	if length <= 6 {
		return bits, length
	}
	return bits & 0x3F, 6
}

// hasAdjacentPair reports whether the oldest->newest bit sequence held in
// the low `length` bits of bits contains two consecutive 1s.
func hasAdjacentPair(bits uint8, length uint8) bool {
	for i := 0; i+1 < int(length); i++ {
		shift1 := uint(length) - 1 - uint(i)
		shift2 := shift1 - 1
		b1 := (bits >> shift1) & 1
		b2 := (bits >> shift2) & 1
		if b1 == 1 && b2 == 1 {
			return true
		}
	}
	return false
}

func reconstruct(layers []map[stateKey]stateVal, key stateKey, val stateVal) [schedule.Horizon]actionset.Symbol {
	var actionsRev [schedule.Horizon]actionset.Symbol
	curVal := val
	for day := schedule.Horizon; day >= 1; day-- {
		actionsRev[schedule.Horizon-day] = curVal.backAction
		curVal = layers[day-1][curVal.backKey]
	}

	var actions [schedule.Horizon]actionset.Symbol
	for i := 0; i < schedule.Horizon; i++ {
		actions[i] = actionsRev[schedule.Horizon-1-i]
	}
	return actions
}
