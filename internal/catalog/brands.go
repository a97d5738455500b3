package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"course-scanner/internal/apperrors"
	"course-scanner/internal/domain"

	"github.com/rs/zerolog"
)

// BrandLister lists the catalog's brand names.
type BrandLister interface {
	BrandNames(ctx context.Context) ([]string, error)
}

// BrandDirectory is the brand list treated as static reference data: it is
// fetched once and served from memory afterwards. A failed load is not cached.
type BrandDirectory struct {
	src BrandLister
	log zerolog.Logger

	mu     sync.Mutex
	brands []string
	loaded bool
}

func NewBrandDirectory(src BrandLister, log zerolog.Logger) *BrandDirectory {
	return &BrandDirectory{src: src, log: log}
}

// Brands returns the brand list. On a fetch failure it logs and returns an
// empty list.
func (d *BrandDirectory) Brands(ctx context.Context) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return slices.Clone(d.brands)
	}

	brands, err := d.src.BrandNames(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to fetch brand names")
		return []string{}
	}
	d.brands = brands
	d.loaded = true
	d.log.Debug().Int("brands", len(brands)).Msg("brand list loaded")
	return slices.Clone(brands)
}

// Resolve maps user input to a known brand, tolerating case and small typos.
func (d *BrandDirectory) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", apperrors.ErrEmptyBrand
	}
	brands := d.Brands(ctx)
	if len(brands) == 0 {
		// Nothing to match against; let the catalog decide.
		return input, nil
	}
	brand, ok := domain.MatchBrand(input, brands)
	if !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownBrand, input)
	}
	if !domain.SameBrand(brand, input) {
		d.log.Info().Str("input", input).Str("brand", brand).Msg("brand matched approximately")
	}
	return brand, nil
}
