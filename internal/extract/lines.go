package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// classifiedLine is one candidate item line with its price classification.
// idx is the position in the windowed line sequence; adjacency checks in the
// reassembler compare these, so skipped lines break adjacency.
type classifiedLine struct {
	idx       int
	text      string
	hasPrice  bool
	priceOnly bool
	price     decimal.Decimal
	rawPrice  string
}

// itemWindow drops the leading and trailing header/footer lines from the
// item scan when the receipt is long enough to have them.
func (e *Extractor) itemWindow(lines []string) []string {
	if len(lines) > e.cfg.MinWindowLines {
		return lines[e.cfg.HeaderFooterMargin : len(lines)-e.cfg.HeaderFooterMargin]
	}
	return lines
}

// classifyCandidates filters out fragments and financial/metadata lines and
// classifies what remains. Lines whose price token fails to parse are kept
// as plain text lines so they can still contribute an item name.
func (e *Extractor) classifyCandidates(window []string) []classifiedLine {
	var cands []classifiedLine
	for idx, line := range window {
		line = strings.TrimSpace(line)
		if len(line) < e.cfg.MinLineLen {
			continue
		}
		if e.containsStopword(line) {
			continue
		}

		cl := classifiedLine{idx: idx, text: line}
		if m := e.priceRe.FindStringSubmatch(line); m != nil {
			price, err := decimal.NewFromString(m[1])
			if err != nil {
				e.log.Debug().Str("token", m[1]).Msg("dropping unparseable price token")
			} else {
				cl.hasPrice = true
				cl.price = price
				cl.rawPrice = m[1]
				cl.priceOnly = e.priceOnlyRe.MatchString(line)
			}
		}
		cands = append(cands, cl)
	}
	return cands
}

// stripPriceToken removes a matched price token (with or without a currency
// symbol) from a line, leaving the residual text.
func stripPriceToken(text, token string) string {
	text = strings.ReplaceAll(text, "$"+token, "")
	text = strings.ReplaceAll(text, token, "")
	return strings.TrimSpace(text)
}
