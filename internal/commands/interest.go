package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/calendar"
)

func newInterestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Manage compounding interest rules",
	}
	cmd.AddCommand(newInterestSetCommand(a), newInterestListCommand(a))
	return cmd
}

func newInterestSetCommand(a *app) *cobra.Command {
	var category, rateStr, startStr string
	var annual bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the interest rule for a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseRate(rateStr)
			if err != nil {
				return err
			}
			start, err := parseDateOrToday(startStr)
			if err != nil {
				return err
			}

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			s.acct.SetInterestRule(category, rate, !annual, start)

			period := "monthly"
			if annual {
				period = "annual"
			}
			details := fmt.Sprintf("%s %s%% %s from %s", category, rate, period, calendar.FormatDate(start))
			return s.save(cmd, "interest-set", details)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category name (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&rateStr, "rate", "", "percentage, e.g. 0.5% (required)")
	_ = cmd.MarkFlagRequired("rate")
	cmd.Flags().BoolVar(&annual, "annual", false, "treat the rate as annual (applied at one twelfth per month)")
	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD, default today)")

	return cmd
}

func newInterestListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List interest rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			names := displayNames(s)
			fmt.Fprintln(out, s.tr("interest_entries"))
			for _, r := range s.acct.InterestRules() {
				period := "monthly"
				if !r.Monthly {
					period = "annual"
				}
				fmt.Fprintf(out, "  %s: %s%% %s from %s (last applied %s)\n",
					names[r.Category], r.RatePercent, period,
					calendar.FormatDate(r.StartDate), calendar.FormatDate(r.LastApplied))
			}
			return nil
		},
	}
	return cmd
}
