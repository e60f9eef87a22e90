package schedule

// PrefixArrays returns the per-day deposit total (including signed manual
// adjustments), per-day bill total, and the cumulative action-independent
// balance base[t] = start + sum(deposits+adjustments through t) -
// sum(bills through t), for t in 0..Horizon. base[0] is always
// plan.StartBalanceCents.
func PrefixArrays(p Plan) (deposits [Horizon + 1]int64, bills [Horizon + 1]int64, base [Horizon + 1]int64) {
	for _, d := range p.Deposits {
		if d.Day >= 1 && d.Day <= Horizon {
			deposits[d.Day] += d.AmountCents
		}
	}
	for _, a := range p.ManualAdjustments {
		if a.Day >= 1 && a.Day <= Horizon {
			deposits[a.Day] += a.AmountCents
		}
	}
	for _, b := range p.Bills {
		if b.Day >= 1 && b.Day <= Horizon {
			bills[b.Day] += b.AmountCents
		}
	}

	running := p.StartBalanceCents
	base[0] = running
	for t := 1; t <= Horizon; t++ {
		running += deposits[t]
		running -= bills[t]
		base[t] = running
	}
	return deposits, bills, base
}

// PreRentBaseDay30 returns start + sum(deposits[1..30]) - sum(bills[1..29]),
// the pre-rent balance projection before any action net deltas are added.
func PreRentBaseDay30(p Plan, deposits, bills [Horizon + 1]int64) int64 {
	pre := p.StartBalanceCents
	for t := 1; t <= Horizon; t++ {
		pre += deposits[t]
	}
	for t := 1; t < Horizon; t++ {
		pre -= bills[t]
	}
	return pre
}
