package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/calendar"
)

func newAddCommand(a *app) *cobra.Command {
	var dateStr, amountStr, category, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
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
			s.acct.Post(date, amount, category, note)

			details := fmt.Sprintf("%s %s %s", calendar.FormatDate(date), amount, category)
			return s.save(cmd, "add", details)
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "signed amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&category, "category", "", "category name (default Other)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")

	return cmd
}
