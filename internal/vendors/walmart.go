package vendors

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// Walmart category codes printed after the price:
// X = taxable, F/Y = food-stamps eligible, O = non-taxable, N = normal.

// Walmart re-parses Walmart receipts with the structured item format
// NAME  ITEMCODE  PRICE  CATEGORY that their registers print.
type Walmart struct {
	headerScanLines int

	storeRe    *regexp.Regexp
	cszRe      *regexp.Regexp
	cashierRe  *regexp.Regexp
	registerRe *regexp.Regexp
	transRe    *regexp.Regexp
	strictRe   *regexp.Regexp
	looseRe    *regexp.Regexp
	taxRateRe  *regexp.Regexp
	tenderRe   *regexp.Regexp

	skipKeywords []string
}

// NewWalmart returns the Walmart specialization.
func NewWalmart() *Walmart {
	return &Walmart{
		headerScanLines: 20,

		storeRe:    regexp.MustCompile(`(?i)(?:STR#|ST#|STORE)\s*#?\s*(\d+)`),
		cszRe:      regexp.MustCompile(`([A-Za-z\s]+),?\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`),
		cashierRe:  regexp.MustCompile(`(?i)(?:MGR|MANAGER|CSM)[:.\s]*(\w+)`),
		registerRe: regexp.MustCompile(`(?i)(?:REG|REGISTER|TR)#\s*(\d+)`),
		transRe:    regexp.MustCompile(`(?i)(?:TR#|TRANS#|TC#)\s*(\d+)`),
		strictRe:   regexp.MustCompile(`^(.+?)\s+(\d{10,14})\s+(\d+\.\d{2})\s+([XYFON])$`),
		looseRe:    regexp.MustCompile(`^(.+?)\s+(\d+\.\d{2})\s+([XYFON])$`),
		taxRateRe:  regexp.MustCompile(`(?i)TAX\s+(\d+)\s+(\d+\.\d+)\s*%\s*(\d+\.\d{2})`),
		tenderRe:   regexp.MustCompile(`(?i)(CASH|DEBIT|CREDIT|DISCOVER|DISCV|DISCY|DISC|VISA|MASTERCARD|AMEX)(?:\s+TEND|\s+CARD)?\s+(\d+\.\d{2})`),

		skipKeywords: []string{"subtotal", "total", "tax", "balance", "change", "paid"},
	}
}

func (w *Walmart) Name() string { return "walmart" }

// Matches triggers on a Walmart vendor field or any mention of the name in
// the raw text (OCR often mangles the header line the generic pass used).
func (w *Walmart) Matches(rec *receipt.Record, text string) bool {
	if strings.Contains(strings.ToLower(rec.Vendor), "walmart") {
		return true
	}
	return strings.Contains(strings.ToLower(text), "walmart")
}

// Enhance rewrites the record from the raw text. Items and tax details are
// replaced wholesale — even when the re-parse finds nothing, which zeroes
// out any generic matches; callers wanting the generic list must check for
// emptiness before this runs.
func (w *Walmart) Enhance(rec *receipt.Record, text string) {
	lines := splitLines(text)

	if !strings.Contains(strings.ToLower(rec.Vendor), "walmart") {
		rec.Vendor = "Walmart"
	}

	w.scanHeader(rec, lines)
	w.scanTransaction(rec, lines)
	rec.Items = w.scanItems(lines)
	rec.Financials.TaxDetails = w.scanTaxDetails(lines)
	w.scanTender(rec, lines)
}

func (w *Walmart) scanHeader(rec *receipt.Record, lines []string) {
	limit := len(lines)
	if limit > w.headerScanLines {
		limit = w.headerScanLines
	}
	for _, line := range lines[:limit] {
		if rec.StoreInfo.StoreNumber == "" {
			if m := w.storeRe.FindStringSubmatch(line); m != nil {
				rec.StoreInfo.StoreNumber = m[1]
			}
		}
		if rec.StoreInfo.City == "" {
			if m := w.cszRe.FindStringSubmatch(line); m != nil {
				rec.StoreInfo.City = strings.TrimSpace(m[1])
				rec.StoreInfo.State = m[2]
				rec.StoreInfo.Zip = m[3]
			}
		}
	}
}

func (w *Walmart) scanTransaction(rec *receipt.Record, lines []string) {
	for _, line := range lines {
		if rec.TransactionMeta.Cashier == "" {
			if m := w.cashierRe.FindStringSubmatch(line); m != nil {
				rec.TransactionMeta.Cashier = m[1]
			}
		}
		if rec.TransactionMeta.Register == "" {
			if m := w.registerRe.FindStringSubmatch(line); m != nil {
				rec.TransactionMeta.Register = m[1]
			}
		}
		if rec.TransactionMeta.TransactionID == "" {
			if m := w.transRe.FindStringSubmatch(line); m != nil {
				rec.TransactionMeta.TransactionID = m[1]
			}
		}
	}
}

// scanItems reads the item section, which ends at the SUBTOTAL line. The
// strict pattern requires the 10-14 digit item code; the loose pattern
// accepts name + price + category for lines where OCR lost the code.
func (w *Walmart) scanItems(lines []string) []receipt.LineItem {
	end := len(lines)
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), "SUBTOTAL") {
			end = i
			break
		}
	}

	items := []receipt.LineItem{}
	for _, line := range lines[:end] {
		if m := w.strictRe.FindStringSubmatch(line); m != nil {
			price, err := decimal.NewFromString(m[3])
			if err != nil {
				continue
			}
			taxable, foodStamps := categoryFlags(m[4])
			items = append(items, receipt.LineItem{
				Name:               strings.TrimSpace(m[1]),
				Code:               m[2],
				Price:              price,
				Taxable:            &taxable,
				FoodStampsEligible: &foodStamps,
				FullText:           line,
			})
			continue
		}

		if m := w.looseRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			if w.skipName(name) {
				continue
			}
			price, err := decimal.NewFromString(m[2])
			if err != nil {
				continue
			}
			taxable, foodStamps := categoryFlags(m[3])
			items = append(items, receipt.LineItem{
				Name:               name,
				Price:              price,
				Taxable:            &taxable,
				FoodStampsEligible: &foodStamps,
				FullText:           line,
			})
		}
	}
	return items
}

func (w *Walmart) scanTaxDetails(lines []string) []receipt.TaxDetail {
	var details []receipt.TaxDetail
	for _, line := range lines {
		m := w.taxRateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rate, err := decimal.NewFromString(m[2])
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(m[3])
		if err != nil {
			continue
		}
		details = append(details, receipt.TaxDetail{
			TaxNumber:   m[1],
			RatePercent: rate,
			Amount:      amount,
		})
	}
	return details
}

func (w *Walmart) scanTender(rec *receipt.Record, lines []string) {
	for _, line := range lines {
		m := w.tenderRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rec.PaymentMethod = m[1]
		if amount, err := decimal.NewFromString(m[2]); err == nil {
			rec.PaymentAmount = &amount
		}
		return
	}
}

func (w *Walmart) skipName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range w.skipKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func categoryFlags(code string) (taxable, foodStamps bool) {
	switch code {
	case "X":
		return true, false
	case "F", "Y":
		return false, true
	default: // O, N
		return false, false
	}
}
