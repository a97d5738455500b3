// Package filter orders and narrows a fetched course list for display.
package filter

import (
	"slices"
	"strings"

	"course-scanner/internal/domain"
)

const (
	PriceLowToHigh = "low-to-high"
	PriceHighToLow = "high-to-low"

	DateNewest = "newest"
	DateOldest = "oldest"

	// AllRegions disables the region filter.
	AllRegions = "all"
)

// Options selects how Apply orders and filters. Zero values mean "not set".
type Options struct {
	PriceOrder string `schema:"price" validate:"omitempty,oneof=low-to-high high-to-low"`
	DateOrder  string `schema:"date" validate:"omitempty,oneof=newest oldest"`
	Region     string `schema:"region"`
}

// Apply returns a new slice holding the courses to display. Price order is
// applied first, then date order as a stable re-sort, then the region filter.
// src is never modified. Courses with unparseable start dates count as the
// earliest.
func Apply(src []domain.Course, opts Options) []domain.Course {
	out := slices.Clone(src)
	if out == nil {
		out = []domain.Course{}
	}

	switch opts.PriceOrder {
	case PriceLowToHigh:
		slices.SortStableFunc(out, func(a, b domain.Course) int { return cmpFloat(a.Price, b.Price) })
	case PriceHighToLow:
		slices.SortStableFunc(out, func(a, b domain.Course) int { return cmpFloat(b.Price, a.Price) })
	}

	switch opts.DateOrder {
	case DateOldest:
		slices.SortStableFunc(out, func(a, b domain.Course) int { return a.StartTime().Compare(b.StartTime()) })
	case DateNewest:
		slices.SortStableFunc(out, func(a, b domain.Course) int { return b.StartTime().Compare(a.StartTime()) })
	}

	region := strings.TrimSpace(opts.Region)
	if region != "" && !strings.EqualFold(region, AllRegions) {
		out = slices.DeleteFunc(out, func(c domain.Course) bool { return !domain.SameRegion(c.Region, region) })
	}
	return out
}

// Regions lists the distinct regions present in courses, in first-seen order,
// for populating a region picker.
func Regions(courses []domain.Course) []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range courses {
		r := strings.TrimSpace(c.Region)
		key := strings.ToLower(r)
		if r == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
