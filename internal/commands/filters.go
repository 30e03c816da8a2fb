package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/accounts"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/model"
)

// filterFlags are the filter options shared by list, summary, export and bulk.
type filterFlags struct {
	search    string
	from      string
	to        string
	category  string
	account   string
	amountMin string
	amountMax string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.search, "search", "s", "", "match description or reference")
	fs.StringVar(&f.from, "from", "", "earliest date, YYYY-MM-DD")
	fs.StringVar(&f.to, "to", "", "latest date, YYYY-MM-DD")
	fs.StringVar(&f.category, "category", "", "category value or label")
	fs.StringVar(&f.account, "account", "", "account value or part of its label")
	fs.StringVar(&f.amountMin, "min", "", "minimum amount")
	fs.StringVar(&f.amountMax, "max", "", "maximum amount")
}

// criteria converts the flags. An unknown category or an unparseable date or
// amount bound is an error; the literal "all" clears the category filter.
func (f *filterFlags) criteria(catalog *accounts.Catalog) (ledger.Criteria, error) {
	c := ledger.Criteria{
		SearchTerm: f.search,
		DateFrom:   f.from,
		DateTo:     f.to,
		AmountMin:  f.amountMin,
		AmountMax:  f.amountMax,
	}
	if cat := strings.TrimSpace(f.category); cat != "" && !strings.EqualFold(cat, "all") {
		parsed, err := model.ParseCategory(cat)
		if err != nil {
			return ledger.Criteria{}, fmt.Errorf("--category: %w", err)
		}
		c.Category = string(parsed)
	}
	if f.account != "" {
		c.Account = catalog.Resolve(f.account)
	}
	if bad := c.Invalid(); len(bad) > 0 {
		names := make([]string, len(bad))
		for i, b := range bad {
			names[i] = boundFlags[b]
		}
		return ledger.Criteria{}, fmt.Errorf("invalid filter value for %s", strings.Join(names, ", "))
	}
	return c, nil
}

// boundFlags maps Criteria.Invalid names to the flags that set them.
var boundFlags = map[string]string{
	"dateFrom":  "--from",
	"dateTo":    "--to",
	"amountMin": "--min",
	"amountMax": "--max",
}

// applyFilters sets the session's filters from the flags.
func (s *session) applyFilters(f *filterFlags) error {
	c, err := f.criteria(s.catalog)
	if err != nil {
		return err
	}
	s.svc.ApplyFilters(c)
	return nil
}

// sortFlags pick the view order. Without --sort the configured order is kept.
type sortFlags struct {
	key  string
	desc bool
}

func (f *sortFlags) bind(cmd *cobra.Command) {
	keys := make([]string, 0, len(ledger.SortKeys()))
	for _, k := range ledger.SortKeys() {
		keys = append(keys, string(k))
	}
	cmd.Flags().StringVar(&f.key, "sort", "", "sort by "+strings.Join(keys, "|"))
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

func (s *session) applySort(f *sortFlags) error {
	if f.key == "" {
		return nil
	}
	key, err := ledger.ParseSortKey(f.key)
	if err != nil {
		return fmt.Errorf("--sort: %w", err)
	}
	dir := ledger.Ascending
	if f.desc {
		dir = ledger.Descending
	}
	s.svc.SetSort(ledger.SortConfig{Key: key, Direction: dir})
	return nil
}
