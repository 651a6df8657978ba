package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

func newProcessCommand(a *app) *cobra.Command {
	var asOfStr string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Apply due schedules and interest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := parseDateOrToday(asOfStr)
			if err != nil {
				return err
			}

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			snap := s.acct.TakeSnapshot()
			before := len(s.acct.Transactions)
			s.acct.ProcessSchedulesUpTo(asOf)
			s.acct.ApplyInterestUpTo(asOf)
			posted := s.acct.Transactions[before:]

			if dryRun {
				if len(posted) == 0 {
					fmt.Fprintln(out, s.tr("nothing_to_post"))
				} else {
					fmt.Fprintln(out, s.tr("would_post"))
					printTransactions(out, posted)
				}
				s.acct.Restore(snap)
				fmt.Fprintln(out, s.tr("dry_run"))
				return nil
			}

			fmt.Fprintln(out, s.tr("processed_through")+calendar.FormatDate(asOf))
			printTransactions(out, posted)

			details := fmt.Sprintf("through %s, %d posted", calendar.FormatDate(asOf), len(posted))
			return s.save(cmd, "process", details)
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", "", "process through this date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would post without saving")

	return cmd
}

func printTransactions(out io.Writer, txs []model.Transaction) {
	for _, tx := range txs {
		fmt.Fprintf(out, "  %s  %12s  %-20s %s\n",
			calendar.FormatDate(tx.Date), tx.Amount.StringFixed(2), tx.Category, tx.Note)
	}
}
