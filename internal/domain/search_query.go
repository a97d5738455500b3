package domain

import (
	"net/url"

	"github.com/gorilla/schema"
)

// SearchQuery is the parameter set of the catalog's /search endpoint and of
// the results page query string.
type SearchQuery struct {
	BrandName string `schema:"brandname" validate:"required"`
	CourseID  string `schema:"course_id" validate:"required"`
	StartDate string `schema:"start_date" validate:"required"`
	Region    string `schema:"region" validate:"required"`
}

var (
	queryEncoder = schema.NewEncoder()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// Values encodes the query in the catalog's parameter names.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	// encoding a flat struct of strings cannot fail
	_ = queryEncoder.Encode(q, v)
	return v
}

// Encode returns the URL query string form.
func (q SearchQuery) Encode() string {
	return q.Values().Encode()
}

// ParseSearchQuery reads a query string produced by Encode. Missing keys stay
// empty; callers validate.
func ParseSearchQuery(v url.Values) (SearchQuery, error) {
	var q SearchQuery
	if err := queryDecoder.Decode(&q, v); err != nil {
		return SearchQuery{}, err
	}
	return q, nil
}
