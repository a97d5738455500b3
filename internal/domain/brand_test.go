package domain

import "testing"

func TestMatchBrand(t *testing.T) {
	brands := []string{"microsoft", "comptia", "cisco", "aws", "ec-council"}

	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"Microsoft", "microsoft", true},
		{"  CISCO ", "cisco", true},
		{"comptai", "comptia", true},
		{"microsfot", "microsoft", true},
		{"oracle", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		got, ok := MatchBrand(tc.input, brands)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("MatchBrand(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}
