package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/importer"
	"github.com/finboard-dev/finboard/internal/storage"
)

func newImportCommand(a *app) *cobra.Command {
	var format, account string
	var suggest bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a bank or finboard CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			reg := importer.NewRegistry()
			reg.Register(&importer.ChaseParser{Account: s.catalog.Resolve(account)})
			reg.Register(&importer.NativeParser{})

			path := args[0]
			ps, err := reg.ParseFile(path, format)
			if err != nil {
				return err
			}
			if len(ps) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No transactions in %s\n", path)
				return nil
			}
			if suggest && reg.Suggestible(format) {
				n := importer.ApplySuggestions(ps, s.suggester, s.catalog.Resolve)
				s.log.Debug().Int("matched", n).Msg("applied suggestions to imported rows")
			}

			added, err := s.svc.Import(ps, filepath.Base(path))
			if err != nil {
				return err
			}
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s\n", len(added), path)
			return nil
		},
	}

	formats := strings.Join(importer.DefaultRegistry().Formats(), "|")
	cmd.Flags().StringVarP(&format, "format", "f", "chase", "file format: "+formats)
	cmd.Flags().StringVar(&account, "account", "", "account label for bank rows")
	cmd.Flags().BoolVar(&suggest, "suggest", true, "categorize bank rows from description keywords")

	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var filters filterFlags
	var sorting sortFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matching transactions as finboard CSV",
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
			if err := s.applySort(&sorting); err != nil {
				return err
			}
			view := s.svc.View()

			if out == "" || out == "-" {
				return storage.WriteTransactions(cmd.OutOrStdout(), view)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := storage.WriteTransactions(f, view); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(view), out)
			return nil
		},
	}

	filters.bind(cmd)
	sorting.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}
