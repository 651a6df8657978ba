package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/calendar"
)

func newAllocateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split deposits across categories",
	}
	cmd.AddCommand(newAllocateAddCommand(a), newAllocateSetCommand(a))
	return cmd
}

func newAllocateAddCommand(a *app) *cobra.Command {
	var dateStr, amountStr, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a deposit split proportionally by allocation percentages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}
			date, err := parseDateOrToday(dateStr)
			if err != nil {
				return err
			}

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			s.acct.Allocate(date, amount, note)

			details := fmt.Sprintf("%s %s", calendar.FormatDate(date), amount)
			return s.save(cmd, "allocate", details)
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "deposit date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "signed amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")

	return cmd
}

func newAllocateSetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category>=<percent> ...",
		Short: "Replace the allocation percentage table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alloc := make(map[string]decimal.Decimal, len(args))
			for _, arg := range args {
				name, pctStr, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("expected <category>=<percent>, got %q", arg)
				}
				pct, err := parseRate(pctStr)
				if err != nil {
					return err
				}
				alloc[name] = pct
			}

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			s.acct.SetAllocations(alloc)

			return s.save(cmd, "allocate-set", strings.Join(args, " "))
		},
	}
	return cmd
}
