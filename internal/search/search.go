package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-scanner/internal/apperrors"
	"course-scanner/internal/domain"
	"course-scanner/internal/filter"
	"course-scanner/internal/validation"

	"github.com/rs/zerolog"
)

// Catalog is the part of the scanner API a search needs.
type Catalog interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Course, error)
	SearchByName(ctx context.Context, courseName string) ([]domain.Course, error)
}

type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNoResults
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNoResults:
		return "no_results"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the resolved state of one search. Courses is never nil. A failed
// fetch looks like an empty result with Err set; it is not returned as an error.
type Result struct {
	Query   domain.SearchQuery
	Name    string
	Courses []domain.Course
	Outcome Outcome
	Err     error
}

// Notice is the user facing message for an empty result, "" otherwise.
func (r Result) Notice() string {
	switch r.Outcome {
	case OutcomeNoResults:
		return "No results found. Try a different date or region."
	case OutcomeFailed:
		return "Courses could not be loaded right now. Please try again."
	}
	return ""
}

// Apply runs the filter engine over the result's courses.
func (r Result) Apply(opts filter.Options) []domain.Course {
	return filter.Apply(r.Courses, opts)
}

// DefaultTimeout bounds one search, retries included.
const DefaultTimeout = 10 * time.Second

type Service struct {
	catalog Catalog
	log     zerolog.Logger

	// Timeout is the overall deadline of Run and ByName. Expiry is reported
	// as OutcomeFailed.
	Timeout time.Duration
}

func NewService(catalog Catalog, log zerolog.Logger) *Service {
	return &Service{catalog: catalog, log: log, Timeout: DefaultTimeout}
}

func (s *Service) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// Run validates q and, only when it is complete, fetches the results. The
// returned error is always a validation error; fetch failures end up in
// Result.Err.
func (s *Service) Run(ctx context.Context, q domain.SearchQuery) (Result, error) {
	if err := validation.Struct(q); err != nil {
		return Result{}, err
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()
	courses, err := s.catalog.Search(ctx, q)
	res := s.resolve(courses, err)
	res.Query = q
	s.log.Info().
		Str("brand", q.BrandName).
		Str("course_id", q.CourseID).
		Str("region", q.Region).
		Stringer("outcome", res.Outcome).
		Int("courses", len(res.Courses)).
		Msg("search done")
	return res, nil
}

// ByName runs the free-text course name search.
func (s *Service) ByName(ctx context.Context, courseName string) (Result, error) {
	courseName = strings.TrimSpace(courseName)
	if courseName == "" {
		return Result{}, apperrors.NewValidationError("course_name")
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()
	courses, err := s.catalog.SearchByName(ctx, courseName)
	res := s.resolve(courses, err)
	res.Name = courseName
	s.log.Info().Str("course_name", courseName).Stringer("outcome", res.Outcome).Int("courses", len(res.Courses)).Msg("search by name done")
	return res, nil
}

func (s *Service) resolve(courses []domain.Course, err error) Result {
	if err != nil {
		s.log.Error().Err(err).Msg("search fetch failed")
		return Result{
			Courses: []domain.Course{},
			Outcome: OutcomeFailed,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrFetchFailed, err),
		}
	}
	if len(courses) == 0 {
		return Result{Courses: []domain.Course{}, Outcome: OutcomeNoResults}
	}
	return Result{Courses: courses, Outcome: OutcomeFound}
}
