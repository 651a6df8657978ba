// Package commands wires the CLI surface: each subcommand loads the config
// and the save file, mutates the in-memory account, and persists the result.
package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/account"
	"github.com/minhngvn/finman/internal/buildinfo"
	"github.com/minhngvn/finman/internal/changelog"
	"github.com/minhngvn/finman/internal/config"
	"github.com/minhngvn/finman/internal/gitops"
	"github.com/minhngvn/finman/internal/i18n"
	"github.com/minhngvn/finman/internal/store"
)

// app holds the state shared by every subcommand: the persistent flags and
// the diagnostic logger.
type app struct {
	configPath string
	dataFile   string
	verbose    bool
	log        *logrus.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{log: logrus.New()}
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd := &cobra.Command{
		Use:     "finman",
		Short:   "Personal finance tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log.SetOutput(cmd.ErrOrStderr())
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			} else {
				a.log.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to finman.yaml")
	rootCmd.PersistentFlags().StringVar(&a.dataFile, "file", "", "save file path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(a),
		newAddCommand(a),
		newAllocateCommand(a),
		newScheduleCommand(a),
		newInterestCommand(a),
		newProcessCommand(a),
		newSummaryCommand(a),
		newSettingsCommand(a),
		newImportCommand(a),
		newLogCommand(a),
	)

	return rootCmd
}

// savePath resolves the save file location from the config and the --file
// override.
func (a *app) savePath(cfg *config.Config) string {
	if a.dataFile != "" {
		return a.dataFile
	}
	return cfg.DataFile
}

// session is one loaded account together with everything needed to talk to
// the user and to persist changes.
type session struct {
	app   *app
	cfg   *config.Config
	store *store.Store
	acct  *account.Account
	msgs  *i18n.Table
	path  string
	fresh bool
}

// open loads the config, the locale tables, and the account. A missing save
// file yields a fresh default account rather than an error.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return nil, err
	}

	msgs := i18n.New()
	if err := msgs.LoadDir(cfg.LocalesDir); err != nil {
		a.log.Warnf("loading locales: %v", err)
	}

	s := &session{
		app:   a,
		cfg:   cfg,
		store: store.New(a.log),
		msgs:  msgs,
		path:  a.savePath(cfg),
	}

	acct, err := s.store.Load(s.path)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		s.acct = account.New(a.log)
		s.fresh = true
		fmt.Fprintln(cmd.OutOrStdout(), s.tr("fresh_account"))
	} else {
		s.acct = acct
		fmt.Fprintln(cmd.OutOrStdout(), s.tr("loaded_from")+s.path)
	}
	return s, nil
}

// tr resolves a message key in the account's configured language.
func (s *session) tr(key string) string {
	return s.msgs.Resolve(s.acct.Settings.Language, key)
}

// save persists the account, appends a changelog entry, and auto-commits the
// data directory when configured. Changelog and git failures are reported but
// do not fail the command once the save file is written.
func (s *session) save(cmd *cobra.Command, action, details string) error {
	if err := s.store.Save(s.path, s.acct); err != nil {
		return fmt.Errorf("saving account: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.tr("saved_to")+s.path)

	dir := filepath.Dir(s.path)
	entry := changelog.Entry{Timestamp: time.Now(), Action: action, Details: details}
	if err := changelog.Append(dir, []changelog.Entry{entry}); err != nil {
		s.app.log.Warnf("appending changelog: %v", err)
	}

	if s.cfg.Git.AutoCommit && gitops.IsRepo(dir) {
		paths := []string{filepath.Base(s.path), "changelog.csv"}
		msg := action + ": " + details
		if _, err := gitops.CommitPaths(dir, paths, msg, s.cfg.Git.AuthorName, s.cfg.Git.AuthorEmail); err != nil {
			s.app.log.Warnf("git auto-commit: %v", err)
		}
	}
	return nil
}
