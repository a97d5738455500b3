package scanner

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"course-scanner/internal/domain"

	"github.com/bytedance/sonic"
)

// courseRecord is one element of the catalog's course arrays. Fields are
// decoded leniently: the upstream service is not ours and has served prices
// as strings and ids as numbers.
type courseRecord struct {
	CourseID   flexString `json:"course_id"`
	CourseName string     `json:"coursename"`
	BrandName  string     `json:"brandname"`
	Website    string     `json:"website"`
	Price      flexPrice  `json:"price"`
	Region     string     `json:"region"`
	Duration   string     `json:"duration"`
	StartDate  string     `json:"start_date"`
	BrandImage string     `json:"brand_image"`
	URL        string     `json:"url"`
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		*s = ""
		return nil
	}
	if raw[0] == '"' {
		var v string
		if err := sonic.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(raw)
	return nil
}

// flexPrice accepts a JSON number, a numeric string ("£1,295.00") or null.
// Anything unreadable or negative becomes 0.
type flexPrice float64

func (p *flexPrice) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		*p = 0
		return nil
	}
	if raw[0] == '"' {
		var v string
		if err := sonic.Unmarshal(b, &v); err != nil {
			return err
		}
		raw = cleanPrice(v)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		*p = 0
		return nil
	}
	*p = flexPrice(f)
	return nil
}

// cleanPrice strips currency symbols or codes, spaces and thousands
// separators, keeping the sign. When both '.' and ',' appear the later one
// is the decimal mark ("1.295,00"). A single ',' followed by other than
// three digits is a decimal mark too ("99,50"); otherwise ',' groups thousands.
func cleanPrice(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == '\'' {
			return -1
		}
		return r
	}, s)
	s = strings.TrimFunc(s, unicode.IsLetter)

	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	if dot >= 0 && comma > dot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		return s
	}
	if dot < 0 && comma >= 0 && strings.Count(s, ",") == 1 && len(s)-comma-1 != 3 {
		return strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, ",", "")
}

func toCourse(r courseRecord) domain.Course {
	img := strings.TrimSpace(r.BrandImage)
	if img == "" {
		img = domain.PlaceholderImage
	}
	return domain.Course{
		CourseID:   strings.TrimSpace(string(r.CourseID)),
		CourseName: r.CourseName,
		BrandName:  strings.TrimSpace(r.BrandName),
		Website:    strings.TrimSpace(r.Website),
		Price:      float64(r.Price),
		Region:     strings.TrimSpace(r.Region),
		Duration:   strings.TrimSpace(r.Duration),
		StartDate:  strings.TrimSpace(r.StartDate),
		ImageURL:   img,
		DetailURL:  strings.TrimSpace(r.URL),
	}
}

func toCourses(in []courseRecord) []domain.Course {
	out := make([]domain.Course, 0, len(in))
	for _, r := range in {
		out = append(out, toCourse(r))
	}
	return out
}
