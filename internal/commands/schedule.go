package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

func newScheduleCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage recurring transactions",
	}
	cmd.AddCommand(newScheduleAddCommand(a), newScheduleListCommand(a))
	return cmd
}

func newScheduleAddCommand(a *app) *cobra.Command {
	var every, monthlyDay int
	var amountStr, startStr, category, note string
	var autoAllocate bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (every > 0) == (monthlyDay > 0) {
				return errors.New("exactly one of --every or --monthly-day is required")
			}
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			sched := model.Schedule{
				Amount:       amount,
				Note:         note,
				AutoAllocate: autoAllocate,
				Category:     category,
			}
			if every > 0 {
				sched.Type = model.EveryXDays
				sched.Param = every
				sched.NextDate, err = parseDateOrToday(startStr)
				if err != nil {
					return err
				}
			} else {
				sched.Type = model.MonthlyDay
				sched.Param = monthlyDay
				if !sched.Valid() {
					return fmt.Errorf("day of month %d out of range", monthlyDay)
				}
				if startStr != "" {
					sched.NextDate, err = calendar.ParseDate(startStr)
					if err != nil {
						return err
					}
				} else {
					// First occurrence of the day not before today.
					yesterday := calendar.AddDays(calendar.Today(), -1)
					sched.NextDate = calendar.NextMonthlyOn(yesterday, monthlyDay)
				}
			}
			if !sched.Valid() {
				return fmt.Errorf("invalid schedule parameter %d", sched.Param)
			}

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			s.acct.AddSchedule(sched)

			details := fmt.Sprintf("%s/%d %s next %s", sched.Type, sched.Param, amount, calendar.FormatDate(sched.NextDate))
			return s.save(cmd, "schedule-add", details)
		},
	}

	cmd.Flags().IntVar(&every, "every", 0, "repeat every N days")
	cmd.Flags().IntVar(&monthlyDay, "monthly-day", 0, "repeat monthly on this day (1-31, clamped to month length)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "signed amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&startStr, "start", "", "first fire date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "category name (default Other)")
	cmd.Flags().BoolVar(&autoAllocate, "auto-allocate", false, "split each positive fire by allocation percentages")

	return cmd
}

func newScheduleListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, s.tr("schedules"))
			for i, sched := range s.acct.Schedules {
				fmt.Fprintf(out, "  %d. %s  next %s  %s\n",
					i+1, describeSchedule(sched), calendar.FormatDate(sched.NextDate), sched.Note)
			}
			return nil
		},
	}
	return cmd
}

func describeSchedule(s model.Schedule) string {
	var when string
	switch s.Type {
	case model.EveryXDays:
		when = fmt.Sprintf("every %d days", s.Param)
	case model.MonthlyDay:
		when = fmt.Sprintf("monthly on day %d", s.Param)
	default:
		when = "invalid"
	}
	target := s.Category
	if s.AutoAllocate {
		target = "auto-allocate"
	} else if target == "" {
		target = model.FallbackDisplay
	}
	if !s.Valid() {
		when += " (invalid, never fires)"
	}
	return fmt.Sprintf("%s %s -> %s", s.Amount.StringFixed(2), when, target)
}
