package domain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceTables(t *testing.T) {
	assert.Len(t, StateAbbreviations, 51)
	assert.Len(t, FIPSIndex, 51)

	seen := make(map[int]bool, len(FIPSIndex))
	for code, idx := range FIPSIndex {
		assert.False(t, seen[idx], "index %d assigned twice (code %s)", idx, code)
		seen[idx] = true
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 51)
	}
}

func TestFIPSAbbreviations_MatchExportOrder(t *testing.T) {
	assert.Len(t, FIPSAbbreviations, 51)

	// Exports list states alphabetically by full name.
	names := make([]string, 0, len(StateAbbreviations))
	for name := range StateAbbreviations {
		names = append(names, name)
	}
	slices.Sort(names)

	for code, idx := range FIPSIndex {
		abbr, ok := FIPSAbbreviations[code]
		assert.True(t, ok, "code %s has no abbreviation", code)
		assert.Equal(t, StateAbbreviations[names[idx]], abbr, "code %s", code)
	}
}

func TestAbbreviationForFIPS(t *testing.T) {
	abbr, ok := AbbreviationForFIPS("8")
	assert.True(t, ok)
	assert.Equal(t, "CO", abbr)

	abbr, ok = AbbreviationForFIPS("56")
	assert.True(t, ok)
	assert.Equal(t, "WY", abbr)

	_, ok = AbbreviationForFIPS("72")
	assert.False(t, ok)
}

func TestAbbreviation(t *testing.T) {
	abbr, ok := Abbreviation("District of Columbia")
	assert.True(t, ok)
	assert.Equal(t, "DC", abbr)

	abbr, ok = Abbreviation(" Wyoming ")
	assert.True(t, ok)
	assert.Equal(t, "WY", abbr)

	_, ok = Abbreviation(NationalName)
	assert.False(t, ok)
}

func TestIndexForFIPS(t *testing.T) {
	tests := []struct {
		code string
		want int
		ok   bool
	}{
		{"01", 0, true},
		{"08", 5, true},
		{"8", 5, true},
		{"11", 8, true},
		{"56", 50, true},
		{"03", 0, false},
		{"72", 0, false},
		{"", 0, false},
		{"CO", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := IndexForFIPS(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
