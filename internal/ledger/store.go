package ledger

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/model"
)

// NewTransactionParams holds the user-supplied fields of a new transaction.
type NewTransactionParams struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        model.TxnType
	Category    model.Category
	Account     string
	Reference   string
}

// TransactionUpdate lists the fields an edit may change. Nil means unchanged.
type TransactionUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *model.Category
}

// IsEmpty reports whether the update changes nothing.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Category == nil
}

// Store is the ordered, in-memory list of transactions. Newest additions
// come first. Reads return copies.
type Store struct {
	mu    sync.RWMutex
	txns  []model.Transaction
	ids   *id.Generator
	clock func() time.Time
}

// NewStore creates a Store seeded with txns. IDs already present are
// registered with gen so they are never reissued.
func NewStore(txns []model.Transaction, gen *id.Generator) *Store {
	if gen == nil {
		gen = id.NewGenerator()
	}
	for _, t := range txns {
		gen.Observe(t.ID)
	}
	return &Store{
		txns:  slices.Clone(txns),
		ids:   gen,
		clock: time.Now,
	}
}

// All returns every transaction in store order.
func (s *Store) All() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.txns)
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}

// Get returns a transaction by ID.
func (s *Store) Get(txnID int64) (model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(txnID)
	if i < 0 {
		return model.Transaction{}, false
	}
	return s.txns[i], true
}

// Add validates params, assigns an ID and creation time, and prepends the
// new transaction.
func (s *Store) Add(p NewTransactionParams) (model.Transaction, error) {
	p.Description = strings.TrimSpace(p.Description)
	if verrs := ValidateNew(p); len(verrs) > 0 {
		return model.Transaction{}, joinValidation(verrs)
	}

	txn := model.Transaction{
		ID:          s.ids.Next(),
		Date:        p.Date,
		Description: p.Description,
		Amount:      p.Amount,
		Type:        p.Type,
		Category:    p.Category,
		Account:     p.Account,
		Reference:   p.Reference,
		CreatedAt:   s.clock().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = slices.Insert(s.txns, 0, txn)
	return txn, nil
}

// Update applies an edit to description, amount or category in place.
func (s *Store) Update(txnID int64, u TransactionUpdate) (model.Transaction, error) {
	if verrs := ValidateUpdate(u); len(verrs) > 0 {
		return model.Transaction{}, joinValidation(verrs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(txnID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("updating %d: %w", txnID, ErrNotFound)
	}

	txn := &s.txns[i]
	if u.Description != nil {
		txn.Description = strings.TrimSpace(*u.Description)
	}
	if u.Amount != nil {
		txn.Amount = *u.Amount
	}
	if u.Category != nil {
		txn.Category = *u.Category
	}
	return *txn, nil
}

// Remove deletes the given IDs and returns the ones that were present.
func (s *Store) Remove(ids ...int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[int64]bool, len(ids))
	for _, v := range ids {
		drop[v] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []int64
	s.txns = slices.DeleteFunc(s.txns, func(t model.Transaction) bool {
		if drop[t.ID] {
			removed = append(removed, t.ID)
			return true
		}
		return false
	})
	return removed
}

// SetCategory sets the category of every listed transaction and returns how
// many were changed.
func (s *Store) SetCategory(ids []int64, c model.Category) (int, error) {
	if !c.Valid() {
		return 0, joinValidation([]ValidationError{{Field: "category", Message: fmt.Sprintf("unknown category %q", c)}})
	}
	set := make(map[int64]bool, len(ids))
	for _, v := range ids {
		set[v] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.txns {
		if set[s.txns[i].ID] {
			s.txns[i].Category = c
			n++
		}
	}
	return n, nil
}

// AddAll validates every params entry and prepends the new transactions as
// one block, keeping their relative order. Nothing is added if any entry is invalid.
func (s *Store) AddAll(ps []NewTransactionParams) ([]model.Transaction, error) {
	for i, p := range ps {
		p.Description = strings.TrimSpace(p.Description)
		if verrs := ValidateNew(p); len(verrs) > 0 {
			return nil, fmt.Errorf("entry %d: %w", i+1, joinValidation(verrs))
		}
	}

	now := s.clock().UTC()
	added := make([]model.Transaction, len(ps))
	for i, p := range ps {
		added[i] = model.Transaction{
			ID:          s.ids.Next(),
			Date:        p.Date,
			Description: strings.TrimSpace(p.Description),
			Amount:      p.Amount,
			Type:        p.Type,
			Category:    p.Category,
			Account:     p.Account,
			Reference:   p.Reference,
			CreatedAt:   now,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = slices.Insert(s.txns, 0, added...)
	return slices.Clone(added), nil
}

func (s *Store) indexOf(txnID int64) int {
	return slices.IndexFunc(s.txns, func(t model.Transaction) bool { return t.ID == txnID })
}
