package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"course-scanner/internal/domain"
)

// Column order is part of the file contract.
var resultsHeader = []string{
	"COURSE_ID",
	"COURSE_TITLE",
	"BRAND",
	"WEBSITE",
	"PRICE",
	"REGION",
	"DURATION",
	"START_DATE",
	"COURSE_URL",
}

// WriteResultsCSV writes one row per course offer, in the given order.
func WriteResultsCSV(w io.Writer, courses []domain.Course) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(resultsHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if err := cw.Write(toResultRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsCSVFile writes the CSV to outPath, creating its directory.
func WriteResultsCSVFile(outPath string, courses []domain.Course) error {
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create dir: %w", err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("export: create csv: %w", err)
	}
	if err := WriteResultsCSV(f, courses); err != nil {
		f.Close()
		return fmt.Errorf("export: write csv: %w", err)
	}
	return f.Close()
}

func toResultRow(c domain.Course) []string {
	price := ""
	if c.Price > 0 {
		price = strconv.FormatFloat(c.Price, 'f', 2, 64)
	}

	return []string{
		c.CourseID,                       // COURSE_ID
		cleanCell(c.Title()),             // COURSE_TITLE
		domain.DisplayBrand(c.BrandName), // BRAND
		cleanCell(c.Website),             // WEBSITE
		price,                            // PRICE
		c.Region,                         // REGION
		cleanCell(c.Duration),            // DURATION
		c.StartDate,                      // START_DATE
		c.DetailURL,                      // COURSE_URL
	}
}

func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
