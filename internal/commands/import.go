package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minhngvn/finman/internal/importer"
)

func newImportCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import transactions from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := importer.DefaultRegistry().Get(format)
			if p == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			txs, err := p.Parse(f)
			if err != nil {
				return err
			}

			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			for _, tx := range txs {
				s.acct.Post(tx.Date, tx.Amount, tx.Category, tx.Note)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%d\n", s.tr("imported"), len(txs))

			details := fmt.Sprintf("%d transactions from %s", len(txs), filepath.Base(args[0]))
			return s.save(cmd, "import", details)
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "import format")

	return cmd
}
