package commands

import (
	"fmt"
	"io"

	"course-scanner/internal/filter"
	"course-scanner/internal/search"

	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "search --brand <brand> --course <course> --start-date <date> --region <region>",
		Short: "Compares the offers for one course.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.filterOptions()
			if err != nil {
				return err
			}
			res, err := f.run(cmd.Context(), app)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res, opts)
			return nil
		},
	}
	f.bindSearch(cmd)
	f.bindFilters(cmd)
	return cmd
}

func newFindCmd(app *App) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "find --name <course name>",
		Short: "Finds offers by course name across every brand.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.filterOptions()
			if err != nil {
				return err
			}
			res, err := app.Search.ByName(cmd.Context(), f.name)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res, opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "course name or code, e.g. AI-102T00")
	_ = cmd.MarkFlagRequired("name")
	f.bindFilters(cmd)
	return cmd
}

func printResult(w io.Writer, res search.Result, opts filter.Options) {
	if notice := res.Notice(); notice != "" {
		fmt.Fprintln(w, notice)
		return
	}
	courses := res.Apply(opts)
	if len(courses) == 0 {
		fmt.Fprintln(w, "No offers match the selected filters.")
		return
	}
	renderCourses(w, courses)
}
