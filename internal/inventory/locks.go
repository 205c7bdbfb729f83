package inventory

import (
	"slices"
)

type lockMode int

const (
	readMode lockMode = iota
	writeMode
)

// lockSet is the set of record locks held by one operation. Locks are taken
// in ascending ISBN order and released together, never piecemeal.
type lockSet struct {
	mode  lockMode
	slots []*slot
}

// lockRecords locks the slots of isbns in ascending ISBN order. The caller
// must hold the master lock and must have checked that every isbn is present.
func (inv *Inventory) lockRecords(isbns []int, mode lockMode) *lockSet {
	ordered := canonical(isbns)

	ls := &lockSet{mode: mode, slots: make([]*slot, 0, len(ordered))}
	for _, isbn := range ordered {
		s := inv.slots[isbn]
		if mode == writeMode {
			s.mu.Lock()
		} else {
			s.mu.RLock()
		}
		ls.slots = append(ls.slots, s)
	}
	return ls
}

// lockAll locks every record currently in the inventory.
func (inv *Inventory) lockAll(mode lockMode) *lockSet {
	isbns := make([]int, 0, len(inv.slots))
	for isbn := range inv.slots {
		isbns = append(isbns, isbn)
	}
	return inv.lockRecords(isbns, mode)
}

func (ls *lockSet) release() {
	for i := len(ls.slots) - 1; i >= 0; i-- {
		if ls.mode == writeMode {
			ls.slots[i].mu.Unlock()
		} else {
			ls.slots[i].mu.RUnlock()
		}
	}
	ls.slots = nil
}

// canonical returns isbns sorted ascending with repeats removed.
func canonical(isbns []int) []int {
	out := slices.Clone(isbns)
	slices.Sort(out)
	return slices.Compact(out)
}
