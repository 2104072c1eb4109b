package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// scanVendor checks the header lines against the known-vendor list and falls
// back to the first line. The fallback is best-effort and may be wrong.
func (e *Extractor) scanVendor(rec *receipt.Record, lines []string) {
	limit := len(lines)
	if limit > e.cfg.VendorScanLines {
		limit = e.cfg.VendorScanLines
	}
	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		for _, vendor := range e.cfg.KnownVendors {
			if strings.Contains(lower, vendor) {
				rec.Vendor = line
				return
			}
		}
	}
	rec.Vendor = lines[0]
}

// scanStoreInfo looks for an address and phone number in the header block,
// first match wins per field.
func (e *Extractor) scanStoreInfo(rec *receipt.Record, lines []string) {
	if len(lines) < 2 {
		return
	}
	limit := len(lines)
	if limit > e.cfg.StoreScanLines {
		limit = e.cfg.StoreScanLines
	}
	for _, line := range lines[1:limit] {
		if rec.StoreInfo.Address == "" && e.addressRe.MatchString(line) {
			rec.StoreInfo.Address = line
		}
		if rec.StoreInfo.Phone == "" {
			if phone := e.phoneRe.FindString(line); phone != "" {
				rec.StoreInfo.Phone = phone
			}
		}
	}
}

// scanDates accumulates every date-shaped token under each grammar.
// Duplicates across grammars are kept; downstream consumers aggregate.
func (e *Extractor) scanDates(rec *receipt.Record, text string) {
	for _, re := range e.dateRes {
		rec.Dates = append(rec.Dates, re.FindAllString(text, -1)...)
	}
}

// scanAmounts accumulates every decimal-looking number found anywhere in
// the text, as a fallback probable-total signal.
func (e *Extractor) scanAmounts(rec *receipt.Record, text string) {
	for _, m := range e.priceRe.FindAllStringSubmatch(text, -1) {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			e.log.Debug().Str("token", m[1]).Msg("dropping unparseable amount token")
			continue
		}
		rec.Amounts = append(rec.Amounts, amount)
	}
}

// scanFinancials extracts subtotal, total and tax lines. Subtotal and total
// are single-valued (first match wins); a line claimed by the subtotal
// pattern is not considered for the total, since "TOTAL" also occurs inside
// "SUBTOTAL". Tax lines accumulate.
func (e *Extractor) scanFinancials(rec *receipt.Record, lines []string) {
	for _, line := range lines {
		if m := e.subtotalRe.FindStringSubmatch(line); m != nil {
			if rec.Financials.Subtotal == nil {
				if v, err := decimal.NewFromString(m[1]); err == nil {
					rec.Financials.Subtotal = &v
				}
			}
		} else if m := e.totalRe.FindStringSubmatch(line); m != nil {
			if rec.Financials.Total == nil {
				if v, err := decimal.NewFromString(m[1]); err == nil {
					rec.Financials.Total = &v
				}
			}
		}

		if m := e.taxRe.FindStringSubmatch(line); m != nil {
			token := m[1]
			if token == "" {
				token = m[2]
			}
			if v, err := decimal.NewFromString(token); err == nil {
				rec.Financials.Tax = append(rec.Financials.Tax, v)
			} else {
				e.log.Debug().Str("token", token).Msg("dropping unparseable tax token")
			}
		}
	}
}

// scanPayment records the first line mentioning a payment method keyword.
func (e *Extractor) scanPayment(rec *receipt.Record, lines []string) {
	for _, line := range lines {
		if e.paymentRe.MatchString(line) {
			rec.PaymentMethod = line
			return
		}
	}
}
