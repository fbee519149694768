package wrapper

import (
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

var bitsetPool sync.Pool

func init() {
	bitsetPool.New = func() any { return bitset.New(0) }
}

func bitsetRecycle(s *bitset.BitSet) {
	s.ClearAll()
	bitsetPool.Put(s)
}

func bitsetGet() *bitset.BitSet {
	return bitsetPool.Get().(*bitset.BitSet)
}

func bitsetFillFirstClear(s *bitset.BitSet) (uint32, bool) {
	av, ok := s.NextClear(0)
	if !ok {
		av = s.Count()
	}
	// limit the index in range [0, MAX_UINT32-1], so that the id space
	// stays addressable after shifting into a fake wrapper address
	if av >= math.MaxUint32 {
		return 0, false
	}
	s.Set(av)
	return uint32(av), true
}
