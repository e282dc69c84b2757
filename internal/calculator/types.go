package calculator

import "strconv"

const (
	// CostTypeA is the resource cost of a Type A craft.
	CostTypeA = 4
	// CostTypeB is the resource cost of a Type B craft.
	CostTypeB = 6
)

// Mix is a concrete number of crafts of each type.
type Mix struct {
	TypeA int `json:"typeA"`
	TypeB int `json:"typeB"`
}

// Crafts returns the total number of crafts in the mix.
func (m Mix) Crafts() int {
	return m.TypeA + m.TypeB
}

// Cost returns the resource units consumed by the mix.
func (m Mix) Cost() int {
	return m.TypeA*CostTypeA + m.TypeB*CostTypeB
}

// Result holds the fewest and the most crafts that spend a target exactly.
// MinMix and MaxMix are one combination achieving each bound.
type Result struct {
	Min    int
	Max    int
	MinMix Mix
	MaxMix Mix
}

// String renders the result as "min max".
func (r Result) String() string {
	return strconv.Itoa(r.Min) + " " + strconv.Itoa(r.Max)
}

// Calculator describes the behaviour required from a craft calculator.
type Calculator interface {
	Solve(target int) (Result, error)
}
