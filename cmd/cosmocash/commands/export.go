package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/cosmocash/internal/report"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the expense ledger as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportOut
		switch exportFormat {
		case "csv":
			if out == "" {
				out = report.CSVFilename
			}
		case "xlsx":
			if out == "" {
				out = report.XLSXFilename
			}
		default:
			return fmt.Errorf("unknown format %q: must be csv or xlsx", exportFormat)
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()

		state := s.h.Snapshot()
		if exportFormat == "csv" {
			err = report.WriteCSV(f, state.Expenses)
		} else {
			err = report.WriteXLSX(f, state.Expenses, state.Wishlist)
		}
		if err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", len(state.Expenses), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default cosmocash_expenses.<format>)")
	rootCmd.AddCommand(exportCmd)
}
