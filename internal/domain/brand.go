package domain

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Brand is one entry of the catalog's brand list.
type Brand struct {
	Name string `json:"brandname"`
}

// minBrandSimilarity is the Jaro-Winkler score below which a typed brand is
// not considered a typo of a known one.
const minBrandSimilarity = 0.85

// MatchBrand resolves user input to a known brand name. An exact
// case-insensitive match wins; otherwise the closest brand by Jaro-Winkler
// similarity is returned when it clears minBrandSimilarity.
func MatchBrand(input string, brands []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	for _, b := range brands {
		if SameBrand(b, input) {
			return b, true
		}
	}

	best, bestScore := "", 0.0
	needle := strings.ToLower(input)
	for _, b := range brands {
		score := matchr.JaroWinkler(needle, strings.ToLower(b), false)
		if score > bestScore {
			best, bestScore = b, score
		}
	}
	if bestScore < minBrandSimilarity {
		return "", false
	}
	return best, true
}
