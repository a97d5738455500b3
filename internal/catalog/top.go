package catalog

import (
	"context"
	"errors"
	"net/url"

	"course-scanner/internal/concurrency"
	"course-scanner/internal/domain"

	"github.com/rs/zerolog"
)

// TopCourse is one entry of the curated home page list. Query is the text
// sent to the name search, which is sometimes shorter than Name.
type TopCourse struct {
	Name   string
	Brand  string
	Region string
	Query  string
}

// URL is the site path of the name search for the course.
func (t TopCourse) URL() string {
	v := url.Values{}
	v.Set("course_name", t.Query)
	return "/searchcourse?" + v.Encode()
}

var topCourses = []TopCourse{
	{Name: "Designing and Implementing a Microsoft Azure AI Solution (AI-102T00)", Brand: "Microsoft", Region: "USA", Query: "AI-102T00"},
	{Name: "CompTIA Security+", Brand: "CompTIA", Region: "USA", Query: "CompTIA Security+"},
	{Name: "Engineering Cisco Meraki Solutions", Brand: "Cisco", Region: "USA", Query: "Engineering Cisco Meraki Solutions"},
	{Name: "Practical Data Science with Amazon SageMaker", Brand: "Aws", Region: "USA", Query: "Amazon SageMaker"},
	{Name: "AWS Cloud Practitioner Essentials", Brand: "Aws", Region: "USA", Query: "AWS Cloud Practitioner Essentials"},
	{Name: "Certified Ethical Hacker (CEH) v12", Brand: "EC-Council", Region: "USA", Query: "CEH"},
	{Name: "Designing and Implementing a Microsoft Azure AI Solution", Brand: "Microsoft", Region: "USA", Query: "Designing and Implementing a Microsoft Azure AI Solution"},
	{Name: "Implementing Automation for Cisco Enterprise Solutions", Brand: "Cisco", Region: "USA", Query: "Implementing Automation for Cisco Enterprise Solutions"},
	{Name: "Data Engineering on Microsoft Azure (DP-203T00)", Brand: "Microsoft", Region: "USA", Query: "Data Engineering on Microsoft Azure (DP-203T00)"},
}

// TopCourses returns a copy of the curated list.
func TopCourses() []TopCourse {
	out := make([]TopCourse, len(topCourses))
	copy(out, topCourses)
	return out
}

// NameSearcher runs the free-text course name search.
type NameSearcher interface {
	SearchByName(ctx context.Context, courseName string) ([]domain.Course, error)
}

// TopOffers holds the offers found for one curated course.
type TopOffers struct {
	Top     TopCourse
	Courses []domain.Course
	Err     error
}

// Cheapest returns the lowest priced offer. Offers without a price are skipped.
func (t TopOffers) Cheapest() (domain.Course, bool) {
	var best domain.Course
	found := false
	for _, c := range t.Courses {
		if c.Price <= 0 {
			continue
		}
		if !found || c.Price < best.Price {
			best, found = c, true
		}
	}
	return best, found
}

// LookupTop searches every curated course in parallel. A failed lookup keeps
// its slot with an empty course list and Err set.
func LookupTop(ctx context.Context, s NameSearcher, tops []TopCourse, opts concurrency.Options, log zerolog.Logger) []TopOffers {
	results, errs := concurrency.ProcessParallel(ctx, tops, opts, func(ctx context.Context, _ int, t TopCourse) (TopOffers, error) {
		courses, err := s.SearchByName(ctx, t.Query)
		if err != nil {
			return TopOffers{Top: t, Courses: []domain.Course{}, Err: err}, err
		}
		return TopOffers{Top: t, Courses: courses}, nil
	})

	for _, err := range errs {
		var ie *concurrency.ItemError
		if errors.As(err, &ie) {
			results[ie.Index].Top = tops[ie.Index]
			if results[ie.Index].Courses == nil {
				results[ie.Index].Courses = []domain.Course{}
			}
			results[ie.Index].Err = ie.Err
		}
		log.Warn().Err(err).Msg("top course lookup failed")
	}
	return results
}
