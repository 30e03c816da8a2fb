package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/finboard-dev/finboard/internal/activity"
	"github.com/finboard-dev/finboard/internal/model"
)

// DefaultSort lists the newest transactions first.
var DefaultSort = SortConfig{Key: SortByDate, Direction: Descending}

// Options configures a Service.
type Options struct {
	Sort SortConfig
	// ClearSelectionOnFilter drops the selection whenever filters change.
	// Off by default: selected IDs survive a filter change even if they are
	// no longer visible.
	ClearSelectionOnFilter bool
	Logger                 zerolog.Logger
	Clock                  func() time.Time
}

// Service owns the transaction store and the state of the transaction view:
// active filters, sort order, the visible list and the selection.
type Service struct {
	store         *Store
	criteria      Criteria
	sort          SortConfig
	selection     *Selection
	view          []model.Transaction
	clearOnFilter bool
	log           zerolog.Logger
	clock         func() time.Time
	activity      []activity.Entry
}

// NewService creates a Service over store. The initial view is the whole
// store ordered by opts.Sort (DefaultSort when unset).
func NewService(store *Store, opts Options) *Service {
	if opts.Sort.Key == "" {
		opts.Sort = DefaultSort
	}
	if opts.Sort.Direction == "" {
		opts.Sort.Direction = Ascending
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Service{
		store:         store,
		sort:          opts.Sort,
		selection:     NewSelection(),
		clearOnFilter: opts.ClearSelectionOnFilter,
		log:           opts.Logger,
		clock:         opts.Clock,
	}
	s.refresh()
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

// View returns the visible transactions: filtered, then sorted.
func (s *Service) View() []model.Transaction {
	return slices.Clone(s.view)
}

// Criteria returns the active filter criteria.
func (s *Service) Criteria() Criteria {
	return s.criteria
}

// SortConfig returns the active sort.
func (s *Service) SortConfig() SortConfig {
	return s.sort
}

// ApplyFilters replaces the active criteria and recomputes the view.
func (s *Service) ApplyFilters(c Criteria) {
	if bad := c.Invalid(); len(bad) > 0 {
		s.log.Warn().Strs("ignored", bad).Msg("ignoring unparseable filter bounds")
	}
	s.criteria = c
	if s.clearOnFilter {
		s.selection.Clear()
	}
	s.refresh()
	s.log.Debug().Int("visible", len(s.view)).Int("total", s.store.Len()).Msg("filters applied")
}

// SortBy toggles the sort for key (see SortConfig.Toggle) and reorders the view.
func (s *Service) SortBy(key SortKey) SortConfig {
	s.SetSort(s.sort.Toggle(key))
	return s.sort
}

// SetSort sets the sort explicitly and reorders the view.
func (s *Service) SetSort(cfg SortConfig) {
	s.sort = cfg
	s.view = Sort(s.view, s.sort)
}

// SelectAll selects exactly the visible transactions, or clears the selection when on is false.
func (s *Service) SelectAll(on bool) {
	if on {
		s.selection.SelectAll(s.view)
		return
	}
	s.selection.Clear()
}

// ToggleSelection selects or deselects a single transaction.
func (s *Service) ToggleSelection(txnID int64, on bool) error {
	if on {
		if _, ok := s.store.Get(txnID); !ok {
			return fmt.Errorf("selecting %d: %w", txnID, ErrNotFound)
		}
	}
	s.selection.Toggle(txnID, on)
	return nil
}

// ClearSelection empties the selection.
func (s *Service) ClearSelection() {
	s.selection.Clear()
}

// Selection returns the selected IDs in selection order.
func (s *Service) Selection() []int64 {
	return s.selection.IDs()
}

// IsSelected reports whether txnID is selected.
func (s *Service) IsSelected(txnID int64) bool {
	return s.selection.Contains(txnID)
}

// AllSelected reports whether every visible transaction is selected.
func (s *Service) AllSelected() bool {
	if len(s.view) == 0 {
		return false
	}
	for _, t := range s.view {
		if !s.selection.Contains(t.ID) {
			return false
		}
	}
	return true
}

// Add creates a transaction at the top of the store. It appears in the view
// only if it matches the active filters.
func (s *Service) Add(p NewTransactionParams) (model.Transaction, error) {
	txn, err := s.store.Add(p)
	if err != nil {
		return model.Transaction{}, err
	}
	s.refresh()
	s.record(activity.ActionAdd, txn.Description, txn.ID)
	s.log.Debug().Int64("id", txn.ID).Str("category", string(txn.Category)).Msg("transaction added")
	return txn, nil
}

// Import adds a batch of transactions at the top of the store, all or nothing.
func (s *Service) Import(ps []NewTransactionParams, source string) ([]model.Transaction, error) {
	added, err := s.store.AddAll(ps)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", source, err)
	}
	if len(added) == 0 {
		return nil, nil
	}
	ids := make([]int64, len(added))
	for i, t := range added {
		ids[i] = t.ID
	}
	s.refresh()
	s.record(activity.ActionImport, source, ids...)
	s.log.Info().Int("count", len(added)).Str("source", source).Msg("transactions imported")
	return added, nil
}

// Edit changes description, amount or category of one transaction. The
// view keeps its current rows and order.
func (s *Service) Edit(txnID int64, u TransactionUpdate) (model.Transaction, error) {
	if u.IsEmpty() {
		txn, ok := s.store.Get(txnID)
		if !ok {
			return model.Transaction{}, fmt.Errorf("editing %d: %w", txnID, ErrNotFound)
		}
		return txn, nil
	}
	txn, err := s.store.Update(txnID, u)
	if err != nil {
		return model.Transaction{}, err
	}
	s.patchView()
	s.record(activity.ActionEdit, describeUpdate(u), txnID)
	s.log.Debug().Int64("id", txnID).Msg("transaction edited")
	return txn, nil
}

// Delete removes one transaction and drops it from the selection.
func (s *Service) Delete(txnID int64) error {
	removed := s.store.Remove(txnID)
	if len(removed) == 0 {
		return fmt.Errorf("deleting %d: %w", txnID, ErrNotFound)
	}
	s.selection.Prune(txnID)
	s.patchView()
	s.record(activity.ActionDelete, "", txnID)
	s.log.Debug().Int64("id", txnID).Msg("transaction deleted")
	return nil
}

// BulkDelete removes every selected transaction and clears the selection.
// It returns the IDs that were removed; an empty selection is a no-op.
func (s *Service) BulkDelete() []int64 {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return nil
	}
	removed := s.store.Remove(ids...)
	s.selection.Clear()
	s.patchView()
	s.record(activity.ActionBulkDelete, fmt.Sprintf("%d selected", len(ids)), removed...)
	s.log.Info().Int("removed", len(removed)).Msg("bulk delete")
	return removed
}

// BulkCategorize sets category on every selected transaction and clears the
// selection. It returns how many transactions changed.
func (s *Service) BulkCategorize(c model.Category) (int, error) {
	if !c.Valid() {
		return 0, joinValidation([]ValidationError{{Field: "category", Message: fmt.Sprintf("unknown category %q", c)}})
	}
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.store.SetCategory(ids, c)
	if err != nil {
		return 0, err
	}
	s.selection.Clear()
	s.patchView()
	s.record(activity.ActionBulkCategorize, "category="+string(c), ids...)
	s.log.Info().Int("updated", n).Str("category", string(c)).Msg("bulk categorize")
	return n, nil
}

// BulkEdit is a hook for editing the selection in bulk. It changes nothing:
// the intent is logged and recorded, and the selection is left as is.
func (s *Service) BulkEdit() []int64 {
	ids := s.selection.IDs()
	s.record(activity.ActionBulkEdit, "no changes applied", ids...)
	s.log.Info().Ints64("ids", ids).Msg("bulk edit requested")
	return ids
}

// Summary aggregates the visible transactions.
func (s *Service) Summary() Summary {
	return Summarize(s.view)
}

// Totals reports visible versus total transaction counts.
func (s *Service) Totals() Totals {
	return Totals{Visible: len(s.view), Total: s.store.Len()}
}

// Activity returns the mutations recorded so far.
func (s *Service) Activity() []activity.Entry {
	return slices.Clone(s.activity)
}

func (s *Service) refresh() {
	s.view = Sort(Filter(s.store.All(), s.criteria), s.sort)
}

// patchView swaps visible rows for their current store versions and drops
// rows that no longer exist, without re-filtering or re-sorting.
func (s *Service) patchView() {
	current := make(map[int64]model.Transaction, s.store.Len())
	for _, t := range s.store.All() {
		current[t.ID] = t
	}
	view := s.view[:0]
	for _, t := range s.view {
		if cur, ok := current[t.ID]; ok {
			view = append(view, cur)
		}
	}
	s.view = view
}

func (s *Service) record(action, details string, ids ...int64) {
	s.activity = append(s.activity, activity.NewEntry(s.clock().UTC(), action, details, ids...))
}

func describeUpdate(u TransactionUpdate) string {
	var parts []string
	if u.Description != nil {
		parts = append(parts, "description")
	}
	if u.Amount != nil {
		parts = append(parts, "amount="+u.Amount.String())
	}
	if u.Category != nil {
		parts = append(parts, "category="+string(*u.Category))
	}
	return strings.Join(parts, " ")
}
