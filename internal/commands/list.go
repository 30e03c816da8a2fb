package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/render"
)

func newListCommand(a *app) *cobra.Command {
	var filters filterFlags
	var sorting sortFlags
	var refs bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions matching the filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.applyFilters(&filters); err != nil {
				return err
			}
			if err := s.applySort(&sorting); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			render.Transactions(out, s.svc.View(), render.TableOptions{
				Display:       a.cfg.Display,
				ShowReference: refs,
			})
			if totals := s.svc.Totals(); totals.Filtered() {
				fmt.Fprintf(out, "Showing %d of %d transactions\n", totals.Visible, totals.Total)
			}
			return nil
		},
	}

	filters.bind(cmd)
	sorting.bind(cmd)
	cmd.Flags().BoolVar(&refs, "refs", false, "show the reference column")

	return cmd
}

func newSummaryCommand(a *app) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and net totals for the matching transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.applyFilters(&filters); err != nil {
				return err
			}
			render.Summary(cmd.OutOrStdout(), s.svc.Summary(), s.svc.Totals(), a.cfg.Display)
			return nil
		},
	}

	filters.bind(cmd)

	return cmd
}
