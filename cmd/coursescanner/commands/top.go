package commands

import (
	"fmt"

	"course-scanner/internal/catalog"
	"course-scanner/internal/concurrency"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTopCmd(app *App) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Shows the best price for each of the top courses.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offers := catalog.LookupTop(cmd.Context(), app.Scanner, catalog.TopCourses(),
				concurrency.Options{MaxWorkers: workers}, app.Log)

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Course", "Brand", "Region", "Offers", "Best price", "Website", "Link"})
			for _, o := range offers {
				best, ok := o.Cheapest()
				price, website := "-", ""
				if ok {
					price, website = formatPrice(best.Price), best.Website
				}
				if o.Err != nil {
					price = "unavailable"
				}
				t.AppendRow(table.Row{o.Top.Name, o.Top.Brand, o.Top.Region, fmt.Sprint(len(o.Courses)), price, website, o.Top.URL()})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", concurrency.DefaultOptions().MaxWorkers, "parallel lookups")
	return cmd
}
