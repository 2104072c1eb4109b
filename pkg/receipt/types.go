package receipt

import (
	"github.com/shopspring/decimal"
)

// LineItem is one purchased product entry derived from one or more OCR lines.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	// Code is the vendor item code (10-14 digit barcode) when a vendor
	// specialization recognized one.
	Code               string `json:"code,omitempty"`
	Taxable            *bool  `json:"taxable,omitempty"`
	FoodStampsEligible *bool  `json:"food_stamps_eligible,omitempty"`
	// FullText preserves the original line(s) the item was derived from.
	FullText string `json:"full_text"`
}

// TaxDetail is one entry of a vendor-specific tax-rate breakdown.
type TaxDetail struct {
	TaxNumber   string          `json:"tax_number"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Amount      decimal.Decimal `json:"amount"`
}

// FinancialSummary holds the receipt's money summary lines. Tax supports
// multiple tax lines; TaxDetails is only populated by vendor specializations.
type FinancialSummary struct {
	Subtotal   *decimal.Decimal  `json:"subtotal,omitempty"`
	Total      *decimal.Decimal  `json:"total,omitempty"`
	Tax        []decimal.Decimal `json:"tax,omitempty"`
	TaxDetails []TaxDetail       `json:"tax_details,omitempty"`
}

// StoreInfo holds recognized store header fields. Each field is set at most
// once per extraction run; the first match wins.
type StoreInfo struct {
	StoreNumber string `json:"store_number,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
}

// TransactionMeta holds register-level transaction details, usually only
// recoverable by a vendor specialization.
type TransactionMeta struct {
	Cashier       string `json:"cashier,omitempty"`
	Register      string `json:"register,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// Record is the structured result of one extraction run. It is constructed
// once per OCR text input and is not mutated afterwards.
//
// Dates are kept as the raw matched strings; the source format is ambiguous
// (MM/DD vs DD/MM) and parsing to calendar dates would destroy that.
// Amounts accumulates every decimal-looking number found anywhere in the
// text, duplicates included, as a fallback signal for the probable total.
type Record struct {
	Vendor          string            `json:"vendor,omitempty"`
	StoreInfo       StoreInfo         `json:"store_info"`
	TransactionMeta TransactionMeta   `json:"transaction_meta"`
	Dates           []string          `json:"dates,omitempty"`
	Amounts         []decimal.Decimal `json:"amounts,omitempty"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	PaymentAmount   *decimal.Decimal  `json:"payment_amount,omitempty"`
	Items           []LineItem        `json:"items"`
	Financials      FinancialSummary  `json:"financials"`
}

// ProbableTotal returns the explicit total when one was matched, otherwise
// the largest accumulated amount as a best-effort guess. Returns nil when
// nothing decimal-looking was found at all.
func (r *Record) ProbableTotal() *decimal.Decimal {
	if r.Financials.Total != nil {
		return r.Financials.Total
	}
	if len(r.Amounts) == 0 {
		return nil
	}
	max := r.Amounts[0]
	for _, a := range r.Amounts[1:] {
		if a.GreaterThan(max) {
			max = a
		}
	}
	return &max
}
