package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/finboard-dev/finboard/internal/config"
)

// Grouping styles for the integer part of an amount.
const (
	GroupingIndian  = "indian"  // 12,34,567.00
	GroupingWestern = "western" // 1,234,567.00
)

var (
	indianPrinter  = message.NewPrinter(language.MustParse("en-IN"))
	westernPrinter = message.NewPrinter(language.English)
)

// Money formats amount with the configured symbol, two decimals and digit
// grouping. Negative amounts carry a leading minus before the symbol.
func Money(amount decimal.Decimal, cfg config.DisplayConfig) string {
	rounded := amount.Round(2)

	p := indianPrinter
	if strings.EqualFold(cfg.Grouping, GroupingWestern) {
		p = westernPrinter
	}
	digits := p.Sprint(number.Decimal(rounded.Abs().InexactFloat64(), number.Scale(2)))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + cfg.Symbol + digits
}

// SignedMoney formats amount with an explicit "+" for positive values.
func SignedMoney(amount decimal.Decimal, cfg config.DisplayConfig) string {
	if amount.IsPositive() {
		return "+" + Money(amount, cfg)
	}
	return Money(amount, cfg)
}
