// Package store holds the in-memory view of a location's price cells and
// makes the optimistic-mutation contract explicit: take a snapshot, apply
// the edit, then either commit the persisted result or roll the whole
// view back to the snapshot.
package store

import (
	"sync"

	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
)

type Store struct {
	mu    sync.RWMutex
	cells map[domain.CellID]domain.PriceCell
}

// Snapshot is an immutable copy of the store's state at one point in time.
type Snapshot map[domain.CellID]domain.PriceCell

func New(cells []domain.PriceCell) *Store {
	s := &Store{cells: make(map[domain.CellID]domain.PriceCell, len(cells))}
	for _, c := range cells {
		s.cells[c.Key()] = c
	}
	return s
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(Snapshot, len(s.cells))
	for k, v := range s.cells {
		snap[k] = v
	}
	return snap
}

// Apply installs an optimistic mutation. The cell replaces any existing
// entry with the same identity tuple; if the cell carries a surrogate ID,
// any entry holding that ID under a different tuple is evicted first, so a
// role retag never leaves both the old and new identity behind.
func (s *Store) Apply(cell domain.PriceCell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(cell)
}

// Commit reconciles the optimistic value with the persisted
// representation. Replacement is by identity match, not position.
func (s *Store) Commit(persisted domain.PriceCell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(persisted)
}

// Rollback restores the state captured immediately before the optimistic
// mutation.
func (s *Store) Rollback(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = make(map[domain.CellID]domain.PriceCell, len(snap))
	for k, v := range snap {
		s.cells[k] = v
	}
}

func (s *Store) Get(key domain.CellID) (domain.PriceCell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cells[key]
	return c, ok
}

func (s *Store) Cells() []domain.PriceCell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PriceCell, 0, len(s.cells))
	for _, c := range s.cells {
		out = append(out, c)
	}
	return out
}

// Row returns the cells sharing one row key.
func (s *Store) Row(key domain.RowID) []domain.PriceCell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PriceCell
	for _, c := range s.cells {
		if c.RowKey() == key {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) put(cell domain.PriceCell) {
	if cell.ID != 0 {
		for k, existing := range s.cells {
			if existing.ID == cell.ID && k != cell.Key() {
				delete(s.cells, k)
			}
		}
	}
	s.cells[cell.Key()] = cell
}
