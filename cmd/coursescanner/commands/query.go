package commands

import (
	"context"
	"net/url"
	"strings"

	"course-scanner/internal/domain"
	"course-scanner/internal/filter"
	"course-scanner/internal/search"

	"github.com/spf13/cobra"
)

// queryFlags are the search form fields plus the result filters.
type queryFlags struct {
	brand     string
	course    string
	startDate string
	region    string
	name      string

	price        string
	date         string
	filterRegion string
}

func (f *queryFlags) bindSearch(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.brand, "brand", "", "brand name")
	cmd.Flags().StringVar(&f.course, "course", "", "course id or course title of the brand")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "earliest start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.region, "region", "", "region, e.g. UK or USA")
}

func (f *queryFlags) bindFilters(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.price, "price", "", "order by price: low-to-high or high-to-low")
	cmd.Flags().StringVar(&f.date, "date", "", "order by start date: newest or oldest")
	cmd.Flags().StringVar(&f.filterRegion, "filter-region", "", "only show offers in this region, all to disable")
}

func (f *queryFlags) filterOptions() (filter.Options, error) {
	return filter.ParseOptions(url.Values{
		"price":  {f.price},
		"date":   {f.date},
		"region": {f.filterRegion},
	})
}

// run resolves the query: a name search when --name is set, otherwise the
// brand/course/date/region search driven through the selection controller.
func (f *queryFlags) run(ctx context.Context, app *App) (search.Result, error) {
	if f.name != "" {
		return app.Search.ByName(ctx, f.name)
	}

	brand := strings.TrimSpace(f.brand)
	if brand != "" {
		resolved, err := app.Brands.Resolve(ctx, brand)
		if err != nil {
			return search.Result{}, err
		}
		brand = resolved
	}

	ctrl := app.selection()
	defer ctrl.Close()
	ctrl.SetBrand(ctx, brand)
	ctrl.Wait()
	ctrl.SetCourse(pickCourse(ctrl.Courses(), f.course))

	q, err := ctrl.BuildSearchQuery(f.startDate, f.region)
	if err != nil {
		return search.Result{}, err
	}
	return app.Search.Run(ctx, q)
}

// pickCourse maps user input to a course id: an exact id wins, then a
// case-insensitive title match. Unknown input is passed through as an id.
func pickCourse(courses []domain.Course, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	for _, c := range courses {
		if c.CourseID == input {
			return c.CourseID
		}
	}
	for _, c := range courses {
		if strings.EqualFold(c.Title(), input) {
			return c.CourseID
		}
	}
	return input
}
