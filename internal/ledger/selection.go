package ledger

import (
	"slices"

	"github.com/finboard-dev/finboard/internal/model"
)

// Selection is the set of transaction IDs marked for a bulk operation.
// IDs() reports them in the order they were selected.
type Selection struct {
	order []int64
	set   map[int64]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{set: make(map[int64]struct{})}
}

// SelectAll replaces the selection with exactly the IDs of visible.
func (s *Selection) SelectAll(visible []model.Transaction) {
	s.Clear()
	for _, t := range visible {
		s.add(t.ID)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.order = nil
	clear(s.set)
}

// Toggle adds id when on is true, otherwise removes it.
func (s *Selection) Toggle(txnID int64, on bool) {
	if on {
		s.add(txnID)
		return
	}
	s.Prune(txnID)
}

// Prune removes ids from the selection if present.
func (s *Selection) Prune(ids ...int64) {
	for _, v := range ids {
		if _, ok := s.set[v]; !ok {
			continue
		}
		delete(s.set, v)
		s.order = slices.DeleteFunc(s.order, func(o int64) bool { return o == v })
	}
}

// Contains reports whether id is selected.
func (s *Selection) Contains(txnID int64) bool {
	_, ok := s.set[txnID]
	return ok
}

// IDs returns the selected IDs.
func (s *Selection) IDs() []int64 {
	return slices.Clone(s.order)
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int {
	return len(s.order)
}

func (s *Selection) add(txnID int64) {
	if _, ok := s.set[txnID]; ok {
		return
	}
	s.set[txnID] = struct{}{}
	s.order = append(s.order, txnID)
}
