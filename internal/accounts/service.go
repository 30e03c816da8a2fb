package accounts

import (
	"strings"

	"github.com/finboard-dev/finboard/internal/model"
)

// Catalog provides lookup over the known account options.
type Catalog struct {
	options []model.AccountOption
	byValue map[string]model.AccountOption
}

// NewCatalog creates a Catalog; an empty list uses Default.
func NewCatalog(options []model.AccountOption) *Catalog {
	if len(options) == 0 {
		options = Default()
	}
	byValue := make(map[string]model.AccountOption, len(options))
	for _, o := range options {
		byValue[strings.ToLower(o.Value)] = o
	}
	return &Catalog{options: options, byValue: byValue}
}

// All returns all account options.
func (c *Catalog) All() []model.AccountOption {
	return c.options
}

// Get returns an option by value, case-insensitively.
func (c *Catalog) Get(value string) (model.AccountOption, bool) {
	o, ok := c.byValue[strings.ToLower(strings.TrimSpace(value))]
	return o, ok
}

// Resolve maps a catalogue value ("bank-sbi") to its label. Anything else is
// free text and is returned trimmed but otherwise unchanged.
func (c *Catalog) Resolve(valueOrLabel string) string {
	if o, ok := c.Get(valueOrLabel); ok {
		return o.Label
	}
	return strings.TrimSpace(valueOrLabel)
}
