package model

// AccountOption is an entry in the account picker. Transactions store the
// label as free text; nothing references an AccountOption by value.
type AccountOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}
