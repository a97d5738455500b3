package filter

import (
	"net/url"
	"strings"

	"course-scanner/internal/validation"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// ParseOptions reads filter controls from a query string
// (?price=low-to-high&date=newest&region=UK). Values are case-insensitive.
func ParseOptions(v url.Values) (Options, error) {
	var opts Options
	if err := decoder.Decode(&opts, v); err != nil {
		return Options{}, err
	}
	opts.PriceOrder = strings.ToLower(strings.TrimSpace(opts.PriceOrder))
	opts.DateOrder = strings.ToLower(strings.TrimSpace(opts.DateOrder))
	opts.Region = strings.TrimSpace(opts.Region)
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate rejects unknown sort orders.
func (o Options) Validate() error {
	return validation.Struct(o)
}
