package importer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/finboard-dev/finboard/internal/ledger"
)

// Parser converts an exported CSV file into new ledger transactions.
type Parser interface {
	Parse(r io.Reader) ([]ledger.NewTransactionParams, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&NativeParser{})
	return r
}

// ParseFile opens path and parses it with the parser registered for format.
func (r *Registry) ParseFile(path, format string) ([]ledger.NewTransactionParams, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown import format %q (known: %s)", format, strings.Join(r.Formats(), ", "))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ps, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", path, p.Format(), err)
	}
	return ps, nil
}

// Suggestible reports whether rows of format carry only default categories,
// so keyword suggestions may replace them. Parsers that read real categories
// implement KeepsCategories.
func (r *Registry) Suggestible(format string) bool {
	p := r.Get(format)
	if p == nil {
		return false
	}
	if k, ok := p.(interface{ KeepsCategories() bool }); ok {
		return !k.KeepsCategories()
	}
	return true
}

// ApplySuggestions overwrites category, and account when empty, on every row
// whose description matches a suggester rule. Suggested account values go
// through resolve so rows store the same label a manual add would. It returns
// how many rows matched.
func ApplySuggestions(ps []ledger.NewTransactionParams, s *ledger.Suggester, resolve func(string) string) int {
	n := 0
	for i := range ps {
		sug, ok := s.Suggest(ps[i].Description)
		if !ok {
			continue
		}
		ps[i].Category = sug.Category
		if ps[i].Account == "" && sug.Account != "" {
			ps[i].Account = resolve(sug.Account)
		}
		n++
	}
	return n
}
