package inventory

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Buy sells copies of existing books as one unit.
//
// A batch with a negative quantity or an invalid or unknown ISBN is rejected
// before any record is touched. Otherwise every book that cannot cover its
// quantity has its sale miss counter incremented and the purchase fails with
// ErrStockUnavailable, leaving all copy counts unchanged. The sale misses are
// kept even though the purchase is aborted. Entries naming the same ISBN are
// summed.
func (inv *Inventory) Buy(copies []BookCopy) error {
	if copies == nil {
		return ErrNullInput
	}
	defer inv.metrics.observe("buy", time.Now())

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	want := make(map[int]int, len(copies))
	for _, c := range copies {
		if c.NumCopies < 0 {
			return fmt.Errorf("%w: isbn %d copies %d", ErrInvalidQuantity, c.ISBN, c.NumCopies)
		}
		if err := inv.checkPresent(c.ISBN); err != nil {
			return err
		}
		if !fitsSum(want[c.ISBN], c.NumCopies) {
			return fmt.Errorf("%w: isbn %d total copies overflow", ErrInvalidQuantity, c.ISBN)
		}
		want[c.ISBN] += c.NumCopies
	}

	locks := inv.lockRecords(keys(want), writeMode)
	defer locks.release()

	var short []int
	for _, s := range locks.slots {
		if s.rec.numCopies < want[s.rec.isbn] {
			s.rec.saleMisses++
			short = append(short, s.rec.isbn)
		}
	}

	if len(short) > 0 {
		inv.metrics.purchaseAborted(len(short))
		inv.log.Debug("purchase aborted", zap.Ints("short_isbns", short))
		return fmt.Errorf("%w: isbns %v", ErrStockUnavailable, short)
	}

	sold := 0
	for _, s := range locks.slots {
		q := want[s.rec.isbn]
		s.rec.numCopies -= q
		sold += q
	}

	inv.metrics.purchaseCommitted(sold)
	return nil
}
