package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/render"
)

// selectFlags choose which transactions a bulk command acts on: every
// transaction matching the filters, or explicit IDs.
type selectFlags struct {
	filters filterFlags
	all     bool
	ids     []string
	dryRun  bool
}

func (f *selectFlags) bind(cmd *cobra.Command) {
	f.filters.bind(cmd)
	cmd.Flags().BoolVar(&f.all, "all", false, "select every transaction matching the filters")
	cmd.Flags().StringArrayVar(&f.ids, "id", nil, "select a transaction by ID (repeatable)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show the selection and exit without changing anything")
}

// preview writes the filtered view with selected rows marked when --dry-run
// is set, and reports whether it did. Selected rows hidden by the filters
// are counted separately.
func (f *selectFlags) preview(cmd *cobra.Command, s *session) bool {
	if !f.dryRun {
		return false
	}
	ids := s.svc.Selection()
	marked := make(map[int64]bool, len(ids))
	for _, txnID := range ids {
		marked[txnID] = true
	}

	view := s.svc.View()
	out := cmd.OutOrStdout()
	render.Transactions(out, view, render.TableOptions{
		Display:  s.app.cfg.Display,
		Selected: marked,
	})

	hidden := len(ids)
	for _, t := range view {
		if marked[t.ID] {
			hidden--
		}
	}
	fmt.Fprintf(out, "Dry run: %d transactions selected", len(ids))
	if hidden > 0 {
		fmt.Fprintf(out, " (%d hidden by filters)", hidden)
	}
	fmt.Fprintln(out, "; nothing changed")
	return true
}

// selectInto applies the filters and builds the session's selection.
func (f *selectFlags) selectInto(s *session) error {
	if !f.all && len(f.ids) == 0 {
		return errors.New("nothing selected: pass --all or --id")
	}
	ids, err := id.ParseAll(f.ids)
	if err != nil {
		return err
	}
	if err := s.applyFilters(&f.filters); err != nil {
		return err
	}
	if f.all {
		s.svc.SelectAll(true)
	}
	for _, txnID := range ids {
		if err := s.svc.ToggleSelection(txnID, true); err != nil {
			return err
		}
	}
	return nil
}

func newBulkCommand(a *app) *cobra.Command {
	bulkCmd := &cobra.Command{
		Use:   "bulk",
		Short: "Act on several transactions at once",
	}
	bulkCmd.AddCommand(
		newBulkDeleteCommand(a),
		newBulkCategorizeCommand(a),
		newBulkEditCommand(a),
	)
	return bulkCmd
}

func newBulkDeleteCommand(a *app) *cobra.Command {
	var sel selectFlags

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the selected transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := sel.selectInto(s); err != nil {
				return err
			}
			if sel.preview(cmd, s) {
				return nil
			}
			removed := s.svc.BulkDelete()
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions selected.")
				return nil
			}
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d transactions\n", len(removed))
			return nil
		},
	}

	sel.bind(cmd)

	return cmd
}

func newBulkCategorizeCommand(a *app) *cobra.Command {
	var sel selectFlags

	cmd := &cobra.Command{
		Use:   "categorize <category>",
		Short: "Set the category of the selected transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}

			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := sel.selectInto(s); err != nil {
				return err
			}
			if sel.preview(cmd, s) {
				return nil
			}
			n, err := s.svc.BulkCategorize(category)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions selected.")
				return nil
			}
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Categorized %d transactions as %s\n", n, category.Label())
			return nil
		},
	}

	sel.bind(cmd)

	return cmd
}

func newBulkEditCommand(a *app) *cobra.Command {
	var sel selectFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Record a bulk edit request for the selected transactions (no fields change)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := sel.selectInto(s); err != nil {
				return err
			}
			if sel.preview(cmd, s) {
				return nil
			}
			ids := s.svc.BulkEdit()
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Bulk edit requested for %d transactions; nothing changed\n", len(ids))
			return nil
		},
	}

	sel.bind(cmd)

	return cmd
}
