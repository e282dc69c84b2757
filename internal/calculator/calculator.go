package calculator

type closedFormCalculator struct{}

// New creates a Calculator that answers each target in constant time.
func New() Calculator {
	return &closedFormCalculator{}
}

func (c *closedFormCalculator) Solve(target int) (Result, error) {
	if target < 0 {
		return Result{}, ErrInvalidTarget
	}
	// Both costs are even and 2 is below the cheapest craft.
	if target%2 != 0 || target == 2 {
		return Result{}, ErrCannotFulfill
	}

	minMix := fewestCrafts(target)
	maxMix := mostCrafts(target)

	return Result{
		Min:    minMix.Crafts(),
		Max:    maxMix.Crafts(),
		MinMix: minMix,
		MaxMix: maxMix,
	}, nil
}

// fewestCrafts leans on Type B and patches the residue mod 6 with Type A.
func fewestCrafts(target int) Mix {
	switch target % CostTypeB {
	case 0:
		return Mix{TypeB: target / CostTypeB}
	case 4:
		return Mix{TypeA: 1, TypeB: (target - 4) / CostTypeB}
	default:
		// residue 2: two Type A crafts cover 8 units
		return Mix{TypeA: 2, TypeB: (target - 8) / CostTypeB}
	}
}

// mostCrafts uses Type A everywhere it can. Targets that are 2 mod 4 trade
// two Type A crafts for a Type A and a Type B, keeping the count at target/4.
func mostCrafts(target int) Mix {
	if target%CostTypeA == 0 {
		return Mix{TypeA: target / CostTypeA}
	}
	return Mix{TypeA: target/CostTypeA - 1, TypeB: 1}
}

// Decompose lists every mix whose cost equals target, ordered by ascending
// Type B count. It returns nil for negative or unreachable targets.
func Decompose(target int) []Mix {
	if target < 0 {
		return nil
	}

	var mixes []Mix
	for typeB := 0; typeB*CostTypeB <= target; typeB++ {
		rest := target - typeB*CostTypeB
		if rest%CostTypeA != 0 {
			continue
		}
		mixes = append(mixes, Mix{TypeA: rest / CostTypeA, TypeB: typeB})
	}
	return mixes
}
