package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReceipt = `SUPERMART
123 Main Street
Springfield, IL 62704
(555) 123-4567
01/15/2024 14:32

Milk 2%                3.49
Bread Wheat            2.29
Eggs   2 @ 1.99        3.98

Subtotal:  9.76
Tax:  0.78
Total:  10.54
VISA CREDIT TEND 10.54
THANK YOU FOR SHOPPING`

func TestExtractFullReceipt(t *testing.T) {
	e := New(DefaultConfig())
	rec := e.Extract(sampleReceipt)

	assert.Equal(t, "SUPERMART", rec.Vendor)
	assert.Equal(t, "123 Main Street", rec.StoreInfo.Address)
	assert.Equal(t, "(555) 123-4567", rec.StoreInfo.Phone)
	assert.Contains(t, rec.Dates, "01/15/2024")

	require.Len(t, rec.Items, 3)
	assert.Equal(t, "Milk 2%", rec.Items[0].Name)
	assert.Equal(t, "3.49", rec.Items[0].Price.StringFixed(2))
	assert.Equal(t, "Bread Wheat", rec.Items[1].Name)
	assert.Equal(t, "Eggs", rec.Items[2].Name)
	assert.Equal(t, "3.98", rec.Items[2].Price.StringFixed(2))

	require.NotNil(t, rec.Financials.Subtotal)
	assert.Equal(t, "9.76", rec.Financials.Subtotal.StringFixed(2))
	require.NotNil(t, rec.Financials.Total)
	assert.Equal(t, "10.54", rec.Financials.Total.StringFixed(2))
	require.Len(t, rec.Financials.Tax, 1)
	assert.Equal(t, "0.78", rec.Financials.Tax[0].StringFixed(2))

	assert.Equal(t, "VISA CREDIT TEND 10.54", rec.PaymentMethod)

	probable := rec.ProbableTotal()
	require.NotNil(t, probable)
	assert.Equal(t, "10.54", probable.StringFixed(2))
}

func TestExtractKnownVendorWinsOverFirstLine(t *testing.T) {
	e := New(DefaultConfig())
	rec := e.Extract("Some banner line\nWalmart Supercenter\n")
	assert.Equal(t, "Walmart Supercenter", rec.Vendor)
}

func TestExtractFinancialLines(t *testing.T) {
	e := New(DefaultConfig())
	rec := e.Extract("Subtotal:  10.77\nTax:  0.86\nTotal:  11.63")

	require.NotNil(t, rec.Financials.Subtotal)
	assert.Equal(t, "10.77", rec.Financials.Subtotal.StringFixed(2))
	require.Len(t, rec.Financials.Tax, 1)
	assert.Equal(t, "0.86", rec.Financials.Tax[0].StringFixed(2))
	require.NotNil(t, rec.Financials.Total)
	assert.Equal(t, "11.63", rec.Financials.Total.StringFixed(2))
}

func TestExtractIsDeterministic(t *testing.T) {
	e := New(DefaultConfig())

	first := e.Extract(sampleReceipt)
	second := e.Extract(sampleReceipt)
	assert.Equal(t, first, second)
}

func TestExtractSubtotalIsNotMistakenForTotal(t *testing.T) {
	e := New(DefaultConfig())
	rec := e.Extract("SUBTOTAL 10.77")

	require.NotNil(t, rec.Financials.Subtotal)
	assert.Equal(t, "10.77", rec.Financials.Subtotal.StringFixed(2))
	assert.Nil(t, rec.Financials.Total)
}

func TestExtractPercentTaxLine(t *testing.T) {
	e := New(DefaultConfig())

	// Rate-then-amount layout without a leading TAX label.
	rec := e.Extract("6.250% 0.22")

	require.Len(t, rec.Financials.Tax, 1)
	assert.Equal(t, "0.22", rec.Financials.Tax[0].StringFixed(2))
}

func TestExtractEmptyTextYieldsEmptyRecord(t *testing.T) {
	e := New(DefaultConfig())
	rec := e.Extract("")

	require.NotNil(t, rec)
	assert.Empty(t, rec.Vendor)
	assert.Empty(t, rec.Items)
	assert.Nil(t, rec.Financials.Subtotal)
	assert.Nil(t, rec.ProbableTotal())
}

func TestProbableTotalFallsBackToLargestAmount(t *testing.T) {
	e := New(DefaultConfig())
	rec := e.Extract("Milk                3.49\nBread               12.10\n")

	assert.Nil(t, rec.Financials.Total)
	probable := rec.ProbableTotal()
	require.NotNil(t, probable)
	assert.Equal(t, "12.10", probable.StringFixed(2))
}
