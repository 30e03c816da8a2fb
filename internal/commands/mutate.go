package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/render"
)

func newAddCommand(a *app) *cobra.Command {
	var date, description, amount, typ, category, account, reference string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Long: `Add a transaction at the top of the ledger.

When --category, --account or --type are omitted they are suggested from
keywords in the description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.newParams(date, description, amount, typ, category, account, reference)
			if err != nil {
				return err
			}
			txn, err := s.svc.Add(p)
			if err != nil {
				return err
			}
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s (%s)\n",
				id.Format(txn.ID), txn.Description, render.SignedMoney(txn.Signed(), a.cfg.Display), txn.Category.Label())
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (default today)")
	fs.StringVarP(&description, "description", "d", "", "description (required)")
	fs.StringVarP(&amount, "amount", "a", "", "amount, never negative (required)")
	fs.StringVar(&typ, "type", "", "credit or debit")
	fs.StringVarP(&category, "category", "c", "", "category value or label")
	fs.StringVar(&account, "account", "", "account value or free-text label")
	fs.StringVar(&reference, "reference", "", "reference number")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// newParams builds add params from flags, filling gaps from the suggester.
// Field validation happens in the ledger.
func (s *session) newParams(date, description, amount, typ, category, account, reference string) (ledger.NewTransactionParams, error) {
	p := ledger.NewTransactionParams{
		Description: description,
		Reference:   strings.TrimSpace(reference),
	}

	if date == "" {
		p.Date = time.Now().UTC().Truncate(24 * time.Hour)
	} else {
		d, err := model.ParseDate(date)
		if err != nil {
			return p, fmt.Errorf("--date %q: expected YYYY-MM-DD", date)
		}
		p.Date = d
	}

	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return p, fmt.Errorf("--amount %q: not a number", amount)
	}
	p.Amount = amt

	sug, suggested := s.suggester.Suggest(description)

	switch {
	case category != "":
		c, err := model.ParseCategory(category)
		if err != nil {
			return p, fmt.Errorf("--category: %w", err)
		}
		p.Category = c
	case suggested:
		p.Category = sug.Category
	}

	switch {
	case typ != "":
		p.Type = model.TxnType(strings.ToLower(strings.TrimSpace(typ)))
	case suggested && sug.Type != "":
		p.Type = sug.Type
	case p.Category == model.CategoryIncome:
		p.Type = model.TypeCredit
	default:
		p.Type = model.TypeDebit
	}

	switch {
	case account != "":
		p.Account = s.catalog.Resolve(account)
	case suggested && sug.Account != "":
		p.Account = s.catalog.Resolve(sug.Account)
	}

	if suggested {
		s.log.Debug().Str("category", string(sug.Category)).Str("account", sug.Account).Msg("applied suggestion")
	}
	return p, nil
}

func newEditCommand(a *app) *cobra.Command {
	var description, amount, category string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change description, amount or category of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := id.Parse(args[0])
			if err != nil {
				return err
			}

			var u ledger.TransactionUpdate
			flags := cmd.Flags()
			if flags.Changed("description") {
				u.Description = &description
			}
			if flags.Changed("amount") {
				amt, err := decimal.NewFromString(strings.TrimSpace(amount))
				if err != nil {
					return fmt.Errorf("--amount %q: not a number", amount)
				}
				u.Amount = &amt
			}
			if flags.Changed("category") {
				c, err := model.ParseCategory(category)
				if err != nil {
					return fmt.Errorf("--category: %w", err)
				}
				u.Category = &c
			}
			if u.IsEmpty() {
				return errors.New("nothing to change: pass --description, --amount or --category")
			}

			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			txn, err := s.svc.Edit(txnID, u)
			if err != nil {
				return err
			}
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s %s (%s)\n",
				id.Format(txn.ID), txn.Description, render.SignedMoney(txn.Signed(), a.cfg.Display), txn.Category.Label())
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&description, "description", "d", "", "new description")
	fs.StringVarP(&amount, "amount", "a", "", "new amount")
	fs.StringVarP(&category, "category", "c", "", "new category value or label")

	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := id.Parse(args[0])
			if err != nil {
				return err
			}

			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.svc.Delete(txnID); err != nil {
				return err
			}
			if err := s.commit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id.Format(txnID))
			return nil
		},
	}

	return cmd
}
