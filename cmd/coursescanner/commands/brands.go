package commands

import (
	"fmt"

	"course-scanner/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newBrandsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "Lists the brands known to the catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			brands := app.Brands.Brands(cmd.Context())
			out := cmd.OutOrStdout()
			if len(brands) == 0 {
				fmt.Fprintln(out, "No brands available.")
				return nil
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"#", "Brand"})
			for i, b := range brands {
				t.AppendRow(table.Row{i + 1, domain.DisplayBrand(b)})
			}
			t.Render()
			return nil
		},
	}
}
