package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSettingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change account settings",
	}
	cmd.AddCommand(newSettingsShowCommand(a), newSettingsSetCommand(a))
	return cmd
}

func newSettingsShowCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "auto_save: %t\n", s.acct.Settings.AutoSave)
			fmt.Fprintf(out, "auto_process_startup: %t\n", s.acct.Settings.AutoProcessOnStartup)
			fmt.Fprintf(out, "language: %s\n", s.acct.Settings.Language)
			return nil
		},
	}
	return cmd
}

func newSettingsSetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting (auto_save, auto_process_startup, language)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			switch key {
			case "auto_save":
				v, err := parseBoolValue(value)
				if err != nil {
					return err
				}
				s.acct.Settings.AutoSave = v
			case "auto_process_startup":
				v, err := parseBoolValue(value)
				if err != nil {
					return err
				}
				s.acct.Settings.AutoProcessOnStartup = v
			case "language":
				s.acct.Settings.Language = strings.ToUpper(strings.TrimSpace(value))
			default:
				return fmt.Errorf("unknown setting %q (auto_save, auto_process_startup, language)", key)
			}

			return s.save(cmd, "settings", key+"="+value)
		},
	}
	return cmd
}
