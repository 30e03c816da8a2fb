package ledger

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/finboard-dev/finboard/internal/model"
)

// SortKey names a transaction field the view can be ordered by.
type SortKey string

const (
	SortByDate        SortKey = "date"
	SortByDescription SortKey = "description"
	SortByAmount      SortKey = "amount"
	SortByCategory    SortKey = "category"
	SortByAccount     SortKey = "account"
	SortByType        SortKey = "type"
	SortByReference   SortKey = "reference"
)

// SortKeys returns every supported key.
func SortKeys() []SortKey {
	return []SortKey{SortByDate, SortByDescription, SortByAmount, SortByCategory, SortByAccount, SortByType, SortByReference}
}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Direction is ascending or descending.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortConfig is the active (key, direction) pair.
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the config after the user picks key: picking the current
// ascending key flips it to descending, anything else sorts key ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

// Sort returns a new slice ordered by cfg. Equal keys keep their input order.
func Sort(txns []model.Transaction, cfg SortConfig) []model.Transaction {
	out := slices.Clone(txns)
	cmp := comparator(cfg.Key)
	if cfg.Direction == Descending {
		slices.SortStableFunc(out, func(a, b model.Transaction) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Compare orders a and b by key ascending: negative if a sorts first.
func Compare(a, b model.Transaction, key SortKey) int {
	return comparator(key)(a, b)
}

func comparator(key SortKey) func(a, b model.Transaction) int {
	switch key {
	case SortByAmount:
		return func(a, b model.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortByDate:
		return func(a, b model.Transaction) int { return a.Date.Compare(b.Date) }
	}

	field := stringField(key)
	// Collator keeps internal buffers, so each comparator gets its own.
	col := collate.New(language.English, collate.IgnoreCase)
	return func(a, b model.Transaction) int {
		return col.CompareString(field(a), field(b))
	}
}

func stringField(key SortKey) func(model.Transaction) string {
	switch key {
	case SortByDescription:
		return func(t model.Transaction) string { return t.Description }
	case SortByCategory:
		return func(t model.Transaction) string { return string(t.Category) }
	case SortByAccount:
		return func(t model.Transaction) string { return t.Account }
	case SortByType:
		return func(t model.Transaction) string { return string(t.Type) }
	case SortByReference:
		return func(t model.Transaction) string { return t.Reference }
	default:
		return func(model.Transaction) string { return "" }
	}
}
