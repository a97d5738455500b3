package selection

import (
	"slices"

	"course-scanner/internal/domain"
)

// PrepareCourseList turns a raw brand scoped fetch into the dropdown list:
// duplicates by exact course name are dropped (first one wins), then the rest
// is stably ordered by start date, earliest first.
func PrepareCourseList(raw []domain.Course) []domain.Course {
	out := DedupeByName(raw)
	slices.SortStableFunc(out, func(a, b domain.Course) int {
		return a.StartTime().Compare(b.StartTime())
	})
	return out
}

// DedupeByName keeps the first course for every distinct raw CourseName.
// Names are compared byte for byte, embedded newlines included.
func DedupeByName(raw []domain.Course) []domain.Course {
	out := make([]domain.Course, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		if seen[c.CourseName] {
			continue
		}
		seen[c.CourseName] = true
		out = append(out, c)
	}
	return out
}
