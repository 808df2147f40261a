package searcher

import "math"

// DefaultExploration is the exploration constant for the UCT selection
// policy.
const DefaultExploration = 2.0

// uct scores the children of one node during selection. The numerator of
// the exploration term depends only on the parent, so it is computed once
// per node.
type uct struct {
	numerator float64
}

func newUCT(c float64, visits float64) uct {
	if visits == 0 {
		panic("cannot compute UCT: node has 0 visits")
	}
	return uct{numerator: c * c * math.Log(visits)}
}

// evaluate returns wins/visits + c*sqrt(ln(N)/visits). Only children that
// have been visited are ever scored, so visits is never zero here.
func (u uct) evaluate(wins, visits float64) float64 {
	if visits == 0 {
		panic("cannot compute UCT: child has 0 visits")
	}
	return wins/visits + math.Sqrt(u.numerator/visits)
}
