package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-scanner/internal/apperrors"
	"course-scanner/internal/domain"
	"course-scanner/internal/filter"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	courses []domain.Course
	err     error
	queries []domain.SearchQuery
	names   []string
}

func (f *fakeCatalog) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Course, error) {
	f.queries = append(f.queries, q)
	return f.courses, f.err
}

func (f *fakeCatalog) SearchByName(ctx context.Context, courseName string) ([]domain.Course, error) {
	f.names = append(f.names, courseName)
	return f.courses, f.err
}

var validQuery = domain.SearchQuery{BrandName: "comptia", CourseID: "7", StartDate: "2024-05-01", Region: "UK"}

func TestRunFound(t *testing.T) {
	cat := &fakeCatalog{courses: []domain.Course{
		{CourseID: "1", Price: 100, Region: "UK"},
		{CourseID: "2", Price: 50, Region: "USA"},
		{CourseID: "3", Price: 75, Region: "UK"},
	}}
	s := NewService(cat, zerolog.Nop())

	res, err := s.Run(context.Background(), validQuery)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, res.Outcome)
	assert.Empty(t, res.Notice())
	assert.Equal(t, validQuery, res.Query)
	require.Len(t, cat.queries, 1)

	got := res.Apply(filter.Options{PriceOrder: filter.PriceLowToHigh, Region: "UK"})
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].CourseID)
	assert.Equal(t, "1", got[1].CourseID)
}

func TestRunNoResults(t *testing.T) {
	s := NewService(&fakeCatalog{courses: []domain.Course{}}, zerolog.Nop())

	res, err := s.Run(context.Background(), validQuery)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoResults, res.Outcome)
	assert.NoError(t, res.Err)
	assert.NotNil(t, res.Courses)
	assert.Contains(t, res.Notice(), "No results")
}

func TestRunFetchFailureIsNotAnError(t *testing.T) {
	s := NewService(&fakeCatalog{err: errors.New("status=502")}, zerolog.Nop())

	res, err := s.Run(context.Background(), validQuery)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, apperrors.ErrFetchFailed)
	assert.NotNil(t, res.Courses)
	assert.Empty(t, res.Courses)
	assert.NotEmpty(t, res.Notice())
}

func TestRunValidationSkipsNetwork(t *testing.T) {
	cat := &fakeCatalog{}
	s := NewService(cat, zerolog.Nop())

	q := validQuery
	q.Region = ""
	_, err := s.Run(context.Background(), q)

	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.EqualError(t, err, "region is required")
	assert.Empty(t, cat.queries)
}

func TestByName(t *testing.T) {
	cat := &fakeCatalog{courses: []domain.Course{{CourseID: "1", CourseName: "CompTIA Security+"}}}
	s := NewService(cat, zerolog.Nop())

	res, err := s.ByName(context.Background(), "  CompTIA Security+ ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, res.Outcome)
	assert.Equal(t, "CompTIA Security+", res.Name)
	assert.Equal(t, []string{"CompTIA Security+"}, cat.names)

	_, err = s.ByName(context.Background(), " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Len(t, cat.names, 1)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", OutcomeFound.String())
	assert.Equal(t, "no_results", OutcomeNoResults.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

// hangingCatalog never answers; it returns once its context ends.
type hangingCatalog struct{}

func (hangingCatalog) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Course, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangingCatalog) SearchByName(ctx context.Context, courseName string) ([]domain.Course, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSearchDeadline(t *testing.T) {
	s := NewService(hangingCatalog{}, zerolog.Nop())
	s.Timeout = 20 * time.Millisecond

	testCases := []struct {
		name string
		run  func() (Result, error)
	}{
		{"run", func() (Result, error) { return s.Run(context.Background(), validQuery) }},
		{"by name", func() (Result, error) { return s.ByName(context.Background(), "CCNA") }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Now()
			res, err := tc.run()
			require.NoError(t, err)
			assert.Less(t, time.Since(start), 2*time.Second)
			assert.Equal(t, OutcomeFailed, res.Outcome)
			assert.ErrorIs(t, res.Err, apperrors.ErrFetchFailed)
			assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
			assert.Empty(t, res.Courses)
		})
	}
}
