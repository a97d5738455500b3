package commands

import (
	"fmt"

	"course-scanner/internal/domain"
	"course-scanner/internal/selection"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCoursesCmd(app *App) *cobra.Command {
	var brand string

	cmd := &cobra.Command{
		Use:   "courses --brand <brand>",
		Short: "Lists the courses a brand offers, earliest start first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := app.Brands.Resolve(cmd.Context(), brand)
			if err != nil {
				return err
			}

			ctrl := app.selection()
			defer ctrl.Close()
			ctrl.SetBrand(cmd.Context(), resolved)
			ctrl.Wait()

			out := cmd.OutOrStdout()
			st, _ := ctrl.State().(selection.Loaded)
			if len(st.Courses) == 0 {
				fmt.Fprintf(out, "No courses available for %s.\n", domain.DisplayBrand(resolved))
				return nil
			}

			t := newTable(out)
			t.SetTitle(domain.DisplayBrand(resolved))
			t.AppendHeader(table.Row{"Course ID", "Course", "Start date"})
			for _, c := range st.Courses {
				t.AppendRow(table.Row{c.CourseID, c.Label(), formatStart(c.StartDate)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "brand name, typos are tolerated")
	_ = cmd.MarkFlagRequired("brand")
	return cmd
}
