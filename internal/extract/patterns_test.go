package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCascadeShapes(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name      string
		line      string
		wantName  string
		wantPrice string
	}{
		{
			name:      "trailing price",
			line:      "MILK 2%                 3.99",
			wantName:  "MILK 2%",
			wantPrice: "3.99",
		},
		{
			name:      "trailing price with tax code",
			line:      "GREAT VALUE BREAD        2.48 X",
			wantName:  "GREAT VALUE BREAD",
			wantPrice: "2.48",
		},
		{
			name:      "quantity keeps extended price",
			line:      "Apples   3 @ 0.99        2.97",
			wantName:  "Apples",
			wantPrice: "2.97",
		},
		{
			name:      "price first",
			line:      "$2.99  Potato Chips",
			wantName:  "Potato Chips",
			wantPrice: "2.99",
		},
		{
			name:      "weight keeps extended price",
			line:      "BANANAS 2.35 lb @ 0.59/lb   1.39",
			wantName:  "BANANAS",
			wantPrice: "1.39",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := e.matchLine(tt.line)
			require.True(t, ok, "expected a cascade match for %q", tt.line)
			assert.Equal(t, tt.wantName, item.Name)
			assert.Equal(t, tt.wantPrice, item.Price.StringFixed(2))
			assert.Equal(t, tt.line, item.FullText)
		})
	}
}

func TestPatternCascadeNoMatch(t *testing.T) {
	e := New(DefaultConfig())

	for _, line := range []string{
		"THANK YOU FOR SHOPPING",
		"",
		"6.99 MISC THING", // single space, neither price-first nor trailing
	} {
		_, ok := e.matchLine(line)
		assert.False(t, ok, "expected no cascade match for %q", line)
	}
}

func TestFallbackItemExtractsResidualName(t *testing.T) {
	e := New(DefaultConfig())

	// Price-bearing line that fits no structural shape still yields an item
	// through the fallback.
	items := e.extractItems([]string{"6.99 MISC THING"})
	require.Len(t, items, 1)
	assert.Equal(t, "MISC THING", items[0].Name)
	assert.Equal(t, "6.99", items[0].Price.StringFixed(2))
}

func TestFallbackRejectsBarePriceFragments(t *testing.T) {
	e := New(DefaultConfig())

	// A residual of two characters or fewer is OCR noise, not a name.
	items := e.extractItems([]string{"XY 6.99"})
	assert.Empty(t, items)
}

func TestClassifyCandidatesFiltersStoplistAndFragments(t *testing.T) {
	e := New(DefaultConfig())

	cands := e.classifyCandidates([]string{
		"MILK                3.49",
		"TOTAL 12.99",
		"X",
		"3.99",
	})
	require.Len(t, cands, 2)

	assert.Equal(t, "MILK                3.49", cands[0].text)
	assert.True(t, cands[0].hasPrice)
	assert.False(t, cands[0].priceOnly)

	assert.Equal(t, "3.99", cands[1].text)
	assert.True(t, cands[1].priceOnly)
}
