package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// matchFunc tries one structural shape against a line. The cascade iterates
// these in priority order and stops at the first match.
type matchFunc func(line string) (receipt.LineItem, bool)

// matchLine runs the pattern cascade over a single line.
func (e *Extractor) matchLine(line string) (receipt.LineItem, bool) {
	for _, match := range e.patterns {
		if item, ok := match(line); ok {
			return item, true
		}
	}
	return receipt.LineItem{}, false
}

// matchTrailingPrice handles "MILK 2%                 3.99" with an optional
// single-letter tax/eligibility code after the price.
func (e *Extractor) matchTrailingPrice(line string) (receipt.LineItem, bool) {
	m := e.trailingPriceRe.FindStringSubmatch(line)
	if m == nil {
		return receipt.LineItem{}, false
	}
	price, err := decimal.NewFromString(m[2])
	if err != nil {
		e.log.Debug().Str("token", m[2]).Msg("dropping unparseable price token")
		return receipt.LineItem{}, false
	}
	return receipt.LineItem{
		Name:     strings.TrimSpace(m[1]),
		Price:    price,
		FullText: line,
	}, true
}

// matchQuantity handles "EGGS   2 @ 1.99        3.98", emitting the extended
// price, not the unit price.
func (e *Extractor) matchQuantity(line string) (receipt.LineItem, bool) {
	m := e.quantityRe.FindStringSubmatch(line)
	if m == nil {
		return receipt.LineItem{}, false
	}
	price, err := decimal.NewFromString(m[4])
	if err != nil {
		e.log.Debug().Str("token", m[4]).Msg("dropping unparseable price token")
		return receipt.LineItem{}, false
	}
	return receipt.LineItem{
		Name:     strings.TrimSpace(m[1]),
		Price:    price,
		FullText: line,
	}, true
}

// matchPriceFirst handles "$2.99  BREAD".
func (e *Extractor) matchPriceFirst(line string) (receipt.LineItem, bool) {
	m := e.priceFirstRe.FindStringSubmatch(line)
	if m == nil {
		return receipt.LineItem{}, false
	}
	price, err := decimal.NewFromString(m[1])
	if err != nil {
		e.log.Debug().Str("token", m[1]).Msg("dropping unparseable price token")
		return receipt.LineItem{}, false
	}
	return receipt.LineItem{
		Name:     strings.TrimSpace(m[2]),
		Price:    price,
		FullText: line,
	}, true
}

// matchWeight handles "APPLES 2.35 lb   @1.99/lb   4.68", emitting the
// extended price.
func (e *Extractor) matchWeight(line string) (receipt.LineItem, bool) {
	m := e.weightRe.FindStringSubmatch(line)
	if m == nil {
		return receipt.LineItem{}, false
	}
	price, err := decimal.NewFromString(m[4])
	if err != nil {
		e.log.Debug().Str("token", m[4]).Msg("dropping unparseable price token")
		return receipt.LineItem{}, false
	}
	return receipt.LineItem{
		Name:     strings.TrimSpace(m[1]),
		Price:    price,
		FullText: line,
	}, true
}

// fallbackItem extracts the first price token and uses the rest of the line
// as the name, for price-bearing lines no specific shape matched. Bare-price
// fragments are rejected by the residual-length guard.
func (e *Extractor) fallbackItem(cl classifiedLine) (receipt.LineItem, bool) {
	name := stripPriceToken(cl.text, cl.rawPrice)
	if len(name) <= e.cfg.FallbackMinResidual {
		return receipt.LineItem{}, false
	}
	return receipt.LineItem{
		Name:     name,
		Price:    cl.price,
		FullText: cl.text,
	}, true
}
