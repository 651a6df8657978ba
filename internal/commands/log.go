package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/changelog"
	"github.com/minhngvn/finman/internal/config"
)

func newLogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the account changelog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(a.configPath)
			if err != nil {
				return err
			}
			entries, err := changelog.Read(filepath.Dir(a.savePath(cfg)))
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-14s %s\n",
					e.Timestamp.Format(time.RFC3339), e.Action, e.Details)
			}
			return nil
		},
	}
	return cmd
}
