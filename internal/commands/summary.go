package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

const recentCount = 10

func newSummaryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show balances, allocations, schedules, and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if s.acct.Settings.AutoProcessOnStartup && !s.fresh {
				today := calendar.Today()
				before := len(s.acct.Transactions)
				s.acct.ProcessSchedulesUpTo(today)
				s.acct.ApplyInterestUpTo(today)
				if posted := len(s.acct.Transactions) - before; posted > 0 {
					fmt.Fprintln(out, s.tr("processed_through")+calendar.FormatDate(today))
					if s.acct.Settings.AutoSave {
						details := fmt.Sprintf("through %s, %d posted", calendar.FormatDate(today), posted)
						if err := s.save(cmd, "auto-process", details); err != nil {
							return err
						}
					}
				}
			}

			fmt.Fprintln(out, s.tr("summary_title"))
			fmt.Fprintln(out, s.tr("total_balance")+s.acct.Balance.StringFixed(2))

			fmt.Fprintln(out, s.tr("category_balances"))
			for _, c := range s.acct.Categories() {
				fmt.Fprintf(out, "  %-20s %12s  (%s%%)\n", c.Display, c.Balance.StringFixed(2), c.Percent)
			}

			if rules := s.acct.InterestRules(); len(rules) > 0 {
				names := displayNames(s)
				fmt.Fprintln(out, s.tr("interest_entries"))
				for _, r := range rules {
					period := "monthly"
					if !r.Monthly {
						period = "annual"
					}
					fmt.Fprintf(out, "  %s: %s%% %s (last applied %s)\n",
						names[r.Category], r.RatePercent, period, calendar.FormatDate(r.LastApplied))
				}
			}

			if len(s.acct.Schedules) > 0 {
				fmt.Fprintln(out, s.tr("schedules"))
				for i, sched := range s.acct.Schedules {
					fmt.Fprintf(out, "  %d. %s  next %s\n", i+1, describeSchedule(sched), calendar.FormatDate(sched.NextDate))
				}
			}

			if recent := s.acct.RecentTransactions(recentCount); len(recent) > 0 {
				fmt.Fprintln(out, s.tr("recent_transactions"))
				printTransactions(out, recent)
			}
			return nil
		},
	}
	return cmd
}

// displayNames maps category keys to display names for printing.
func displayNames(s *session) map[model.CategoryKey]string {
	names := make(map[model.CategoryKey]string)
	for _, c := range s.acct.Categories() {
		names[c.Key] = c.Display
	}
	return names
}
