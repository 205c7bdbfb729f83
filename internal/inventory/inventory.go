// Package inventory is an in-memory book stock engine that is safe for
// concurrent use.
//
// Every operation first takes the master lock: in write mode when it changes
// which ISBNs exist (Add, Remove, RemoveAll), in read mode otherwise. A batch
// is validated in full while only the master lock is held. The operation then
// locks the records it touches in ascending ISBN order, does its work, and
// releases the record locks before the master lock.
package inventory

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Inventory struct {
	mu    sync.RWMutex // master lock, guards the key set of slots
	slots map[int]*slot

	rndMu sync.Mutex
	rnd   Rand

	log     *zap.Logger
	metrics *Metrics
}

type Option func(*Inventory)

// WithRand sets the randomness source of the editor pick selector.
func WithRand(r Rand) Option {
	return func(inv *Inventory) { inv.rnd = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(inv *Inventory) { inv.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(inv *Inventory) { inv.metrics = m }
}

func New(opts ...Option) *Inventory {
	inv := &Inventory{slots: make(map[int]*slot)}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.rnd == nil {
		inv.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if inv.log == nil {
		inv.log = zap.NewNop()
	}
	return inv
}

// Len returns the number of books in the inventory.
func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.slots)
}

// Add inserts new books. Nothing is inserted unless every book is valid and
// none of their ISBNs is already present or repeated in the batch.
func (inv *Inventory) Add(books []StockBook) error {
	if books == nil {
		return ErrNullInput
	}
	defer inv.metrics.observe("add", time.Now())

	inv.mu.Lock()
	defer inv.mu.Unlock()

	seen := make(map[int]struct{}, len(books))
	for _, b := range books {
		if err := validateBook(b); err != nil {
			return err
		}
		if _, ok := inv.slots[b.ISBN]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateISBN, b.ISBN)
		}
		if _, ok := seen[b.ISBN]; ok {
			return fmt.Errorf("%w: %d repeated in batch", ErrDuplicateISBN, b.ISBN)
		}
		seen[b.ISBN] = struct{}{}
	}

	for _, b := range books {
		inv.slots[b.ISBN] = newSlot(b)
	}

	inv.metrics.setBooks(len(inv.slots))
	inv.log.Debug("books added", zap.Int("count", len(books)), zap.Int("total", len(inv.slots)))
	return nil
}

// AddCopies increases the stock of existing books. Entries naming the same
// ISBN are summed.
func (inv *Inventory) AddCopies(copies []BookCopy) error {
	if copies == nil {
		return ErrNullInput
	}
	defer inv.metrics.observe("add_copies", time.Now())

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	add := make(map[int]int, len(copies))
	for _, c := range copies {
		if err := inv.checkPresent(c.ISBN); err != nil {
			return err
		}
		if !validNumCopies(c.NumCopies) {
			return fmt.Errorf("%w: isbn %d copies %d", ErrInvalidQuantity, c.ISBN, c.NumCopies)
		}
		if !fitsSum(add[c.ISBN], c.NumCopies) {
			return fmt.Errorf("%w: isbn %d total copies overflow", ErrInvalidQuantity, c.ISBN)
		}
		add[c.ISBN] += c.NumCopies
	}

	locks := inv.lockRecords(keys(add), writeMode)
	defer locks.release()

	for _, s := range locks.slots {
		if !fitsSum(s.rec.numCopies, add[s.rec.isbn]) {
			return fmt.Errorf("%w: isbn %d copies overflow", ErrInvalidQuantity, s.rec.isbn)
		}
	}
	for _, s := range locks.slots {
		s.rec.numCopies += add[s.rec.isbn]
	}
	return nil
}

// UpdateEditorPicks sets the editor pick flag of existing books. When an
// ISBN appears more than once the last entry wins.
func (inv *Inventory) UpdateEditorPicks(picks []EditorPick) error {
	if picks == nil {
		return ErrNullInput
	}
	defer inv.metrics.observe("update_editor_picks", time.Now())

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	flags := make(map[int]bool, len(picks))
	for _, p := range picks {
		if err := inv.checkPresent(p.ISBN); err != nil {
			return err
		}
		flags[p.ISBN] = p.EditorPick
	}

	locks := inv.lockRecords(keys(flags), writeMode)
	defer locks.release()

	for _, s := range locks.slots {
		s.rec.editorPick = flags[s.rec.isbn]
	}
	return nil
}

// Remove deletes existing books together with their locks.
func (inv *Inventory) Remove(isbns []int) error {
	if isbns == nil {
		return ErrNullInput
	}
	defer inv.metrics.observe("remove", time.Now())

	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, isbn := range isbns {
		if err := inv.checkPresent(isbn); err != nil {
			return err
		}
	}

	locks := inv.lockRecords(isbns, writeMode)
	defer locks.release()

	for _, s := range locks.slots {
		delete(inv.slots, s.rec.isbn)
	}

	inv.metrics.setBooks(len(inv.slots))
	inv.log.Debug("books removed", zap.Int("count", len(locks.slots)), zap.Int("total", len(inv.slots)))
	return nil
}

// RemoveAll empties the inventory.
func (inv *Inventory) RemoveAll() error {
	defer inv.metrics.observe("remove_all", time.Now())

	inv.mu.Lock()
	defer inv.mu.Unlock()

	locks := inv.lockAll(writeMode)
	defer locks.release()

	n := len(inv.slots)
	inv.slots = make(map[int]*slot)

	inv.metrics.setBooks(0)
	inv.log.Debug("all books removed", zap.Int("count", n))
	return nil
}

func keys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
