package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// PlaceholderImage is shown on cards when the catalog has no brand image.
const PlaceholderImage = "/bg.png"

// labelMaxRunes is the width of a course entry in the course-name dropdown.
const labelMaxRunes = 40

// Course is one listing returned by the course scanner catalog.
// Values are built from decoded API responses and never mutated afterwards.
type Course struct {
	CourseID   string  `json:"course_id"`
	CourseName string  `json:"coursename"`
	BrandName  string  `json:"brandname"`
	Website    string  `json:"website"`
	Price      float64 `json:"price"`
	Region     string  `json:"region"`
	Duration   string  `json:"duration"`
	StartDate  string  `json:"start_date"` // ISO 8601 calendar date
	ImageURL   string  `json:"brand_image"`
	DetailURL  string  `json:"url"`
}

// Title is the display title: the course name up to its first newline.
func (c Course) Title() string {
	if i := strings.IndexByte(c.CourseName, '\n'); i >= 0 {
		return strings.TrimSpace(c.CourseName[:i])
	}
	return strings.TrimSpace(c.CourseName)
}

// Label is the dropdown form of the course name, cut at 40 characters.
func (c Course) Label() string {
	if utf8.RuneCountInString(c.CourseName) <= labelMaxRunes {
		return c.CourseName
	}
	r := []rune(c.CourseName)
	return string(r[:labelMaxRunes]) + "..."
}

// StartTime parses StartDate. Missing or unparseable dates return the zero time,
// so they order before every real date.
func (c Course) StartTime() time.Time {
	return ParseDate(c.StartDate)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000Z",
}

// ParseDate reads an ISO 8601 date; the zero time means "unknown".
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// DisplayBrand title-cases a brand name, including the letter after a hyphen
// ("ec-council" -> "Ec-Council").
func DisplayBrand(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	out := make([]rune, 0, len(lower))
	startOfWord := true
	for _, r := range lower {
		if startOfWord && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		startOfWord = !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		out = append(out, r)
	}
	return string(out)
}

// SameBrand compares brand names case-insensitively.
func SameBrand(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SameRegion compares region codes case-insensitively, with no partial matching.
func SameRegion(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
