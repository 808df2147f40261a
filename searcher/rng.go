package searcher

import (
	"github.com/seehuhn/mt19937"
	"golang.org/x/exp/rand"
)

// mtSource adapts the Mersenne Twister generator to the rand.Source
// interface, giving searches a long-period generator that is reproducible
// from a single seed.
type mtSource struct {
	mt *mt19937.MT19937
}

func newSource(seed uint64) rand.Source {
	s := &mtSource{mt: mt19937.New()}
	s.Seed(seed)
	return s
}

func (s *mtSource) Uint64() uint64 {
	return s.mt.Uint64()
}

func (s *mtSource) Seed(seed uint64) {
	s.mt.Seed(int64(seed))
}
