/*
Package actionset defines the action alphabet as a data table rather than a
type hierarchy, per the design note that a deployment picks exactly one
table and every downstream component (DP state, CP model arity, objective
tuple width) reads its shape off that table at runtime.
*/
package actionset

import "fmt"

// Symbol indexes a single action within a Table.
type Symbol int

// Table is a deployment's action alphabet: parallel slices of display
// symbols and their per-day net cent payout. The symbol with the smallest
// NetCents, lowest index on ties, is the canonical "off" action (see
// OffIndex).
//
// PenaltyWeights, when non-nil, is a parallel slice used by the secondary
// action-class penalty objective stage (spec §4.5 stage 5); a nil slice
// means every symbol contributes zero penalty.
type Table struct {
	Names          []string
	NetCents       []int64
	PenaltyWeights []int64
}

// Minimal returns the canonical two-action alphabet {Off, Work}, with Work
// paying out 10,000 cents ($100.00) per day. This is a 3-term objective
// deployment (workdays, adjacent-work pairs, |final-target|); the large-
// payout-count and action-class-penalty stages are never engaged.
func Minimal() Table {
	return Table{
		Names:    []string{"Off", "Work"},
		NetCents: []int64{0, 10_000},
	}
}

// Historical returns the five-action alphabet {O, S, M, L, SS} from the
// historical variant of this system, with distinct per-symbol payouts.
// This is a 5-term objective deployment: stage 4 counts days assigned the
// "L" symbol, stage 5 sums PenaltyWeights.
func Historical() Table {
	return Table{
		Names:          []string{"O", "S", "M", "L", "SS"},
		NetCents:       []int64{0, 4_000, 7_500, 10_000, 14_500},
		PenaltyWeights: []int64{0, 0, 1, 2, 0},
	}
}

// HasExtendedObjective reports whether this table's deployment uses the
// 5-term objective (workdays, adjacent-work pairs, |final-target|,
// large-payout days, action-class penalty) instead of the minimal 3-term
// one. Per the spec's design note, a deployment picks exactly one
// alphabet and wires both solvers' objective-tuple length to it; a table
// with more than two symbols is the signal that the deployment intends
// the extended objective.
func (t Table) HasExtendedObjective() bool { return len(t.Names) > 2 }

// LargeIndex returns the symbol named "L", if this table defines one.
// Used by the stage-4 "large-payout days" objective component.
func (t Table) LargeIndex() (Symbol, bool) {
	for i, n := range t.Names {
		if n == "L" {
			return Symbol(i), true
		}
	}
	return 0, false
}

// PenaltyOf returns the action-class penalty weight for symbol s (zero if
// PenaltyWeights is unset).
func (t Table) PenaltyOf(s Symbol) int64 {
	if t.PenaltyWeights == nil {
		return 0
	}
	return t.PenaltyWeights[s]
}

// Len returns the number of symbols in the alphabet.
func (t Table) Len() int { return len(t.Names) }

// NetCentsOf returns the net cent payout for symbol s.
func (t Table) NetCentsOf(s Symbol) int64 { return t.NetCents[s] }

// NameOf returns the display name for symbol s.
func (t Table) NameOf(s Symbol) string { return t.Names[s] }

// OffIndex returns the symbol with the smallest net payout, treated as the
// "off" action for the off-off rest rule. Ties are broken by lowest index.
func (t Table) OffIndex() Symbol {
	best := Symbol(0)
	for i := 1; i < len(t.NetCents); i++ {
		if t.NetCents[i] < t.NetCents[best] {
			best = Symbol(i)
		}
	}
	return best
}

// MaxNetCents returns the largest per-day payout in the alphabet, used by
// the DP solver's global feasibility pruning bound.
func (t Table) MaxNetCents() int64 {
	max := t.NetCents[0]
	for _, v := range t.NetCents[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// IsOff reports whether symbol s is the designated off action.
func (t Table) IsOff(s Symbol) bool { return s == t.OffIndex() }

// IsWork reports whether symbol s is any non-off action.
func (t Table) IsWork(s Symbol) bool { return !t.IsOff(s) }

// SymbolByName looks up a symbol by its display name.
func (t Table) SymbolByName(name string) (Symbol, error) {
	for i, n := range t.Names {
		if n == name {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("actionset: unknown symbol %q", name)
}

// Valid reports whether s indexes a symbol in this table.
func (t Table) Valid(s Symbol) bool {
	return s >= 0 && int(s) < len(t.Names)
}
