package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

func TestReassembleNameThenPriceOnly(t *testing.T) {
	e := New(DefaultConfig())

	items := e.extractItems([]string{
		"Organic Bananas",
		"2.49",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Organic Bananas", items[0].Name)
	assert.Equal(t, "2.49", items[0].Price.StringFixed(2))
	assert.Equal(t, "Organic Bananas 2.49", items[0].FullText)
}

func TestReassembleWrappedDescription(t *testing.T) {
	e := New(DefaultConfig())

	// The description wrapped onto a second line that carries the price; the
	// residual joins the name.
	items := e.extractItems([]string{
		"T-Shirt Summer",
		"Collection               15.99",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "T-Shirt Summer Collection", items[0].Name)
	assert.Equal(t, "15.99", items[0].Price.StringFixed(2))
}

func TestReassembleSkipsStandalonePrice(t *testing.T) {
	e := New(DefaultConfig())

	// A bare price with nothing above it has no name to attach to.
	items := e.extractItems([]string{"3.99"})
	assert.Empty(t, items)
}

func TestReassembleAdjacencyBrokenByFilteredLine(t *testing.T) {
	e := New(DefaultConfig())

	// The stoplist line between name and price breaks adjacency, so neither
	// side becomes an item.
	items := e.extractItems([]string{
		"Organic Bananas",
		"SUBTOTAL",
		"2.49",
	})
	assert.Empty(t, items)
}

func TestSimilarItemNames(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name1 string
		name2 string
		want  bool
	}{
		// Short label followed by a long variant description.
		{"Socks 3-pack", "Men's Size 10-13", true},
		// Two unrelated short names.
		{"Milk", "Bread", false},
		// Quantity lines keep their own identity.
		{"Apples 3 @ 0.99", "Oranges", false},
		// Shared dominant words.
		{"Chicken Breast Boneless", "Chicken Breast Family Pack", true},
		// Word counts too far apart.
		{"Extra Large Premium Quality Dog Food", "Cat", false},
		// Two short names where one carries a size modifier.
		{"Gloves", "Large Gloves", true},
	}

	for _, tt := range tests {
		got := e.similarItemNames(tt.name1, tt.name2)
		assert.Equal(t, tt.want, got, "similarItemNames(%q, %q)", tt.name1, tt.name2)
	}
}

func TestMergeSimilarKeepsLargerPrice(t *testing.T) {
	e := New(DefaultConfig())

	items := e.mergeSimilar([]receipt.LineItem{
		{Name: "Socks 3-pack", Price: decimal.RequireFromString("4.99"), FullText: "Socks 3-pack  4.99"},
		{Name: "Men's Size 10-13", Price: decimal.RequireFromString("0.00"), FullText: "Men's Size 10-13  0.00"},
		{Name: "Bread", Price: decimal.RequireFromString("2.29"), FullText: "Bread  2.29"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "Socks 3-pack Men's Size 10-13", items[0].Name)
	assert.Equal(t, "4.99", items[0].Price.StringFixed(2))
	assert.Equal(t, "Socks 3-pack  4.99 + Men's Size 10-13  0.00", items[0].FullText)
	assert.Equal(t, "Bread", items[1].Name)
}
