package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/account"
	"github.com/minhngvn/finman/internal/config"
	"github.com/minhngvn/finman/internal/gitops"
	"github.com/minhngvn/finman/internal/store"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool
	var git bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new account save file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(a.configPath)
			if err != nil {
				return err
			}
			path := a.savePath(cfg)
			cfg.DataFile = path

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("save file already exists at %s (use --force to overwrite)", path)
			}

			acct := account.New(a.log)
			if err := store.New(a.log).Save(path, acct); err != nil {
				return fmt.Errorf("writing save file: %w", err)
			}

			if _, err := os.Stat(a.configPath); errors.Is(err, fs.ErrNotExist) {
				if err := config.Save(a.configPath, cfg); err != nil {
					return fmt.Errorf("writing config: %w", err)
				}
			}

			if git {
				dir := filepath.Dir(path)
				if !gitops.IsRepo(dir) {
					if err := gitops.Init(dir); err != nil {
						return err
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized account at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing save file")
	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository in the data directory")

	return cmd
}
