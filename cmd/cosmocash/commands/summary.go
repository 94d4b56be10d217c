package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/household"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard for the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		printDashboard(cmd.OutOrStdout(), s.h.Dashboard())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printDashboard(w io.Writer, d household.Dashboard) {
	if d.CurrentUser == nil {
		fmt.Fprintln(w, "No roommates yet. Add one with: cosmocash roommate add")
		return
	}

	fmt.Fprintf(w, "Welcome back, %s\n\n", d.CurrentUser.Name)
	fmt.Fprintf(w, "  Personal spending  $%s\n", calculator.FormatAmount(d.PersonalSpending))
	fmt.Fprintf(w, "  Shared spending    $%s\n", calculator.FormatAmount(d.SharedSpending))
	fmt.Fprintf(w, "  You owe            $%s\n", calculator.FormatAmount(d.AmountOwed))

	fmt.Fprintln(w, "\nUpcoming bills")
	if len(d.UpcomingBills) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, e := range d.UpcomingBills {
		fmt.Fprintf(w, "  %s  %-24s $%s\n", e.DueDate, e.Description, calculator.FormatAmount(e.Amount))
	}

	fmt.Fprintln(w, "\nWishlist")
	if len(d.Wishlist) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, p := range d.Wishlist {
		status := fmt.Sprintf("%.0f%%", p.Progress)
		if p.Funded {
			status = "funded"
		}
		fmt.Fprintf(w, "  %-24s $%s / $%s  %s\n",
			p.Item.Name,
			calculator.FormatAmount(p.Item.CurrentAmount),
			calculator.FormatAmount(p.Item.TargetAmount),
			status,
		)
	}
}
