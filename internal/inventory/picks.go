package inventory

import (
	"fmt"
	"time"
)

// Rand is the randomness source of the editor pick selector.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// EditorPicks returns up to n distinct books flagged as editor picks, drawn
// uniformly at random. When there are no more than n picks all of them are
// returned in ISBN order.
func (inv *Inventory) EditorPicks(n int) ([]Book, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n = %d, but it must be non-negative", ErrInvalidArgument, n)
	}
	defer inv.metrics.observe("editor_picks", time.Now())

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	locks := inv.lockAll(readMode)
	defer locks.release()

	var picks []Book
	for _, s := range locks.slots {
		if s.rec.editorPick {
			picks = append(picks, s.rec.book())
		}
	}

	if n >= len(picks) {
		if picks == nil {
			return []Book{}, nil
		}
		return picks, nil
	}

	inv.rndMu.Lock()
	idx := sampleIndices(inv.rnd, n, len(picks))
	inv.rndMu.Unlock()

	out := make([]Book, 0, n)
	for _, i := range idx {
		out = append(out, picks[i])
	}
	return out, nil
}

// sampleIndices draws n distinct indices from [0, m) by rejection sampling,
// in draw order. It requires 0 <= n <= m.
func sampleIndices(r Rand, n, m int) []int {
	seen := make(map[int]struct{}, n)
	out := make([]int, 0, n)
	for len(out) < n {
		i := r.Intn(m)
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}
