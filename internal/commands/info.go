package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/accounts"
	"github.com/finboard-dev/finboard/internal/activity"
	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/ledger"
)

func newSuggestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <description>",
		Short: "Show the category, account and type suggested for a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			sug, ok := ledger.NewSuggester(a.cfg.Rules).Suggest(desc)
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No suggestion.")
				return nil
			}
			account := accounts.NewCatalog(a.cfg.Accounts).Resolve(sug.Account)
			fmt.Fprintf(out, "category: %s\naccount:  %s\ntype:     %s\n", sug.Category.Label(), account, sug.Type)
			return nil
		},
	}
	return cmd
}

func newAccountsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the known accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Value", "Label"})
			for _, o := range accounts.NewCatalog(a.cfg.Accounts).All() {
				table.Append([]string{o.Value, o.Label})
			}
			table.Render()
			return nil
		},
	}
	return cmd
}

func newActivityCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the most recent ledger changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.ActivityLog == "" {
				fmt.Fprintln(out, "Activity log is disabled (set activity_log in finboard.yaml).")
				return nil
			}
			entries, err := activity.Read(a.cfg.ActivityLog)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity recorded.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Time", "Action", "Details", "Transactions"})
			table.SetAutoWrapText(false)
			for _, e := range entries {
				ids := make([]string, len(e.TransactionIDs))
				for i, v := range e.TransactionIDs {
					ids[i] = id.Format(v)
				}
				table.Append([]string{e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, e.Details, strings.Join(ids, " ")})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many entries (0 for all)")

	return cmd
}
