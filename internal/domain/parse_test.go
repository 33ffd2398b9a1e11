package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected StateRecord
		ok       bool
	}{
		{"all four counts", "StateA 60 30 5 25", StateRecord{State: "StateA", Counts: Counts{60, 30, 5, 25}}, true},
		{"missing active", "StateC 10 5 2", StateRecord{State: "StateC", Counts: Counts{10, 5, 2, 0}}, true},
		{"multi-word label", "Andaman and Nicobar Islands 10 0 0 10", StateRecord{State: "Andaman and Nicobar Islands", Counts: Counts{10, 0, 0, 10}}, true},
		{"fixed-width spacing", "Tamil Nadu          411     6     5   400", StateRecord{State: "Tamil Nadu", Counts: Counts{411, 6, 5, 400}}, true},
		{"label keeps inner spacing", "Jammu  &  Kashmir 62 2 2 58", StateRecord{State: "Jammu  &  Kashmir", Counts: Counts{62, 2, 2, 58}}, true},
		{"tab separated", "Kerala\t286\t26\t2\t258", StateRecord{State: "Kerala", Counts: Counts{286, 26, 2, 258}}, true},
		{"trailing tokens ignored", "Delhi 152 6 2 144 #", StateRecord{State: "Delhi", Counts: Counts{152, 6, 2, 144}}, true},
		{"footnote marker on active", "Kerala 286 26 2 258*", StateRecord{State: "Kerala", Counts: Counts{286, 26, 2, 258}}, true},
		{"footnote marker as active", "Kerala 286 26 2 *", StateRecord{State: "Kerala", Counts: Counts{286, 26, 2, 0}}, true},
		{"non-numeric fourth token", "Goa 5 0 0 *", StateRecord{State: "Goa", Counts: Counts{5, 0, 0, 0}}, true},
		{"label with punctuation", "Total* 100 50 10 40", StateRecord{State: "Total*", Counts: Counts{100, 50, 10, 40}}, true},
		{"header line", "State Confirmed Recovered Deaths Active", StateRecord{}, false},
		{"leading serial number", "1 Kerala 286 26 2 258", StateRecord{}, false},
		{"label with digit", "Zone2 5 3 1", StateRecord{}, false},
		{"too few counts", "StateD 10 5", StateRecord{}, false},
		{"comma in count", "StateE 1,000 5 2 3", StateRecord{}, false},
		{"decimal count", "StateF 10.5 5 2", StateRecord{}, false},
		{"negative count", "StateG -1 5 2", StateRecord{}, false},
		{"digits only", "42", StateRecord{}, false},
		{"empty", "", StateRecord{}, false},
		{"footnote marker on deaths", "Kerala 286 26 2# 258", StateRecord{}, false},
		{"overflowing count", "StateH 99999999999999999999999 1 1", StateRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := ParseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, rec)
		})
	}
}

func TestIsNoiseLine(t *testing.T) {
	assert.True(t, IsNoiseLine("42"))
	assert.True(t, IsNoiseLine("0"))
	assert.False(t, IsNoiseLine(""))
	assert.False(t, IsNoiseLine("4 2"))
	assert.False(t, IsNoiseLine("Page 2"))
	assert.False(t, IsNoiseLine("-3"))
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("  Uttar Pradesh\t 113  ")
	assert.Equal(t, []token{
		{text: "Uttar", start: 2},
		{text: "Pradesh", start: 8},
		{text: "113", start: 17},
	}, tokens)

	assert.Empty(t, tokenize("   "))
}
