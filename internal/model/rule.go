package model

// Rule maps description keywords to suggested transaction fields.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Category Category `yaml:"category"`
	Account  string   `yaml:"account,omitempty"`
	Type     TxnType  `yaml:"type,omitempty"`
}
