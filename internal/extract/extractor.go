// Package extract turns noisy OCR receipt text into a structured record.
// Extraction never fails: fields that match nothing stay empty, and numeric
// tokens that do not parse are dropped, so callers always get a best-effort
// record.
package extract

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// Extractor is the generic, vendor-agnostic extraction engine. It is safe
// for concurrent use; every call is a pure function of the input text.
type Extractor struct {
	cfg Config
	log zerolog.Logger

	priceRe     *regexp.Regexp
	priceOnlyRe *regexp.Regexp

	// Item shape cascade, tried in priority order.
	trailingPriceRe *regexp.Regexp
	quantityRe      *regexp.Regexp
	priceFirstRe    *regexp.Regexp
	weightRe        *regexp.Regexp
	patterns        []matchFunc

	addressRe  *regexp.Regexp
	phoneRe    *regexp.Regexp
	dateRes    []*regexp.Regexp
	subtotalRe *regexp.Regexp
	totalRe    *regexp.Regexp
	taxRe      *regexp.Regexp
	paymentRe  *regexp.Regexp
}

// New compiles the pattern set once and returns a ready Extractor.
func New(cfg Config) *Extractor {
	e := &Extractor{
		cfg: cfg,
		log: logging.GetLogger("extract"),

		priceRe:     regexp.MustCompile(`(?:\$\s*)?(\d+\.\d{2})`),
		priceOnlyRe: regexp.MustCompile(`^\s*(?:\$\s*)?(\d+\.\d{2})\s*[A-Za-z]?\s*$`),

		// The name group refuses "@" so quantity-priced lines fall through to
		// the quantity shape instead of being swallowed whole.
		trailingPriceRe: regexp.MustCompile(`^([^@]+?)\s{2,}(\d+\.\d{2})\s*([A-Za-z])?$`),
		quantityRe:      regexp.MustCompile(`^(.+?)\s+(\d+)\s*@\s*(\d+\.\d{2})\s+(\d+\.\d{2})$`),
		priceFirstRe:    regexp.MustCompile(`^(?:\$\s*)?(\d+\.\d{2})\s{2,}(.+)$`),
		weightRe:        regexp.MustCompile(`^(.+?)\s+(\d+\.?\d*)\s*(?:lb|kg|oz|g)\s*@\s*(?:\$\s*)?(\d+\.?\d*)/(?:lb|kg|oz|g)\s+(\d+\.\d{2})$`),

		addressRe: regexp.MustCompile(`(?i)\d+\s+[A-Za-z\s]+(?:ST|STREET|AVE|AVENUE|BLVD|RD|ROAD|DR|DRIVE|LN|LANE)\b`),
		phoneRe:   regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		dateRes: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
			regexp.MustCompile(`\b\d{2}[/-]\d{2}[/-]\d{2,4}\b`),
			regexp.MustCompile(`\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\b`),
		},
		subtotalRe: regexp.MustCompile(`(?i)SUBTOTAL\s*:?\s*(?:\$\s*)?(\d+\.\d{2})`),
		totalRe:    regexp.MustCompile(`(?i)TOTAL\s*:?\s*(?:\$\s*)?(\d+\.\d{2})`),
		taxRe:      regexp.MustCompile(`(?i)TAX\s*:?\s*(?:\d+\s*)?(?:\$\s*)?(\d+\.\d{2})|(?:\d+\.\d+)\s*%\s*(\d+\.\d{2})`),
		paymentRe:  regexp.MustCompile(`(?i)credit|debit|cash|discover|visa|mastercard|amex|american express`),
	}
	e.patterns = []matchFunc{
		e.matchTrailingPrice,
		e.matchQuantity,
		e.matchPriceFirst,
		e.matchWeight,
	}
	return e
}

// Extract builds a structured record from OCR text. It never returns an
// error; anything unrecognized is simply absent from the result.
func (e *Extractor) Extract(text string) *receipt.Record {
	rec := &receipt.Record{}
	lines := splitLines(text)
	if len(lines) == 0 {
		return rec
	}

	e.scanVendor(rec, lines)
	e.scanStoreInfo(rec, lines)
	e.scanDates(rec, text)
	e.scanAmounts(rec, text)
	e.scanFinancials(rec, lines)
	e.scanPayment(rec, lines)
	rec.Items = e.extractItems(lines)

	e.log.Debug().
		Str("vendor", rec.Vendor).
		Int("items", len(rec.Items)).
		Int("dates", len(rec.Dates)).
		Msg("generic extraction complete")
	return rec
}

// splitLines trims and drops blank lines, preserving order.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (e *Extractor) containsStopword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range e.cfg.Stoplist {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
