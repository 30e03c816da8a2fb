package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/model"
)

// TableOptions controls the transaction table.
type TableOptions struct {
	Display config.DisplayConfig
	// Selected marks rows whose ID is in the set.
	Selected map[int64]bool
	// ShowReference adds the reference column.
	ShowReference bool
}

// Transactions writes txns as a table. An empty list prints a single notice line.
func Transactions(w io.Writer, txns []model.Transaction, opts TableOptions) {
	if len(txns) == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return
	}

	header := []string{"", "ID", "Date", "Description", "Category", "Account", "Amount"}
	if opts.ShowReference {
		header = append(header, "Reference")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	align := []int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	}
	if opts.ShowReference {
		align = append(align, tablewriter.ALIGN_LEFT)
	}
	table.SetColumnAlignment(align)

	for _, t := range txns {
		mark := ""
		if opts.Selected[t.ID] {
			mark = "*"
		}
		row := []string{
			mark,
			id.Format(t.ID),
			t.DateString(),
			t.Description,
			t.Category.Label(),
			t.Account,
			SignedMoney(t.Signed(), opts.Display),
		}
		if opts.ShowReference {
			row = append(row, t.Reference)
		}
		table.Append(row)
	}
	table.Render()
}

// Summary writes the aggregate figures for the visible transactions, with a
// "showing N of M" line when filters hide some of them.
func Summary(w io.Writer, s ledger.Summary, totals ledger.Totals, display config.DisplayConfig) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Append([]string{"Transactions", fmt.Sprintf("%d", s.TransactionCount)})
	table.Append([]string{"Total Income", Money(s.TotalIncome, display)})
	table.Append([]string{"Total Expenses", Money(s.TotalExpense, display)})
	table.Append([]string{"Net Amount", SignedMoney(s.NetAmount, display)})
	table.Render()

	if totals.Filtered() {
		fmt.Fprintf(w, "Showing %d of %d transactions\n", totals.Visible, totals.Total)
	}
}
