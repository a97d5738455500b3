package commands

import (
	"fmt"
	"io"

	"course-scanner/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func formatPrice(p float64) string {
	if p <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}

func formatStart(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}

func renderCourses(w io.Writer, courses []domain.Course) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Course", "Brand", "Website", "Price", "Region", "Duration", "Start date", "Link"})
	for _, c := range courses {
		t.AppendRow(table.Row{
			c.Title(),
			domain.DisplayBrand(c.BrandName),
			c.Website,
			formatPrice(c.Price),
			c.Region,
			c.Duration,
			formatStart(c.StartDate),
			c.DetailURL,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d offers", len(courses))})
	t.Render()
}
