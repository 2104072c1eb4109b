package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// extractItems runs the two-line reassembly scan over the candidate lines,
// falls back to the single-line cascade, then merges adjacent items that
// look like fragments of the same entry.
func (e *Extractor) extractItems(lines []string) []receipt.LineItem {
	cands := e.classifyCandidates(e.itemWindow(lines))

	var items []receipt.LineItem
	i := 0
	for i < len(cands) {
		cur := cands[i]

		if i+1 < len(cands) {
			next := cands[i+1]
			adjacent := next.idx == cur.idx+1

			// Name line followed by a bare price: the price belongs to the
			// name above it.
			if adjacent && !cur.hasPrice && next.priceOnly {
				items = append(items, receipt.LineItem{
					Name:     cur.text,
					Price:    next.price,
					FullText: cur.text + " " + next.text,
				})
				i += 2
				continue
			}

			// Name line followed by a description line that carries the
			// price: join the residual description onto the name.
			if adjacent && !cur.hasPrice && next.hasPrice {
				residual := stripPriceToken(next.text, next.rawPrice)
				name := cur.text
				if len(residual) > e.cfg.MergeMinResidual {
					name = cur.text + " " + residual
				}
				items = append(items, receipt.LineItem{
					Name:     name,
					Price:    next.price,
					FullText: cur.text + " " + next.text,
				})
				i += 2
				continue
			}
		}

		// Bare prices not consumed above have no name to attach to.
		if cur.priceOnly {
			i++
			continue
		}

		if item, ok := e.matchLine(cur.text); ok {
			items = append(items, item)
			i++
			continue
		}

		if cur.hasPrice {
			if item, ok := e.fallbackItem(cur); ok {
				items = append(items, item)
			}
		}
		i++
	}

	return e.mergeSimilar(items)
}

// mergeSimilar walks the item list once and folds adjacent entries whose
// names look like parts of the same item. The merged entry keeps the larger
// price. Known-imprecise: both false merges and missed merges happen on
// messy scans, which is the accepted trade-off.
func (e *Extractor) mergeSimilar(items []receipt.LineItem) []receipt.LineItem {
	var merged []receipt.LineItem
	i := 0
	for i < len(items) {
		cur := items[i]
		if i+1 < len(items) && e.similarItemNames(cur.Name, items[i+1].Name) {
			next := items[i+1]
			merged = append(merged, receipt.LineItem{
				Name:     cur.Name + " " + next.Name,
				Price:    decimal.Max(cur.Price, next.Price),
				FullText: cur.FullText + " + " + next.FullText,
			})
			i += 2
			continue
		}
		merged = append(merged, cur)
		i++
	}
	return merged
}

// similarItemNames reports whether two adjacent item names are likely
// fragments of the same entry.
func (e *Extractor) similarItemNames(name1, name2 string) bool {
	// Quantity-priced lines keep their own identity.
	if strings.Contains(name1, "@") || strings.Contains(name2, "@") {
		return false
	}

	words1 := strings.Fields(name1)
	words2 := strings.Fields(name2)

	// Short label followed by a long description reads as a size/variant
	// continuation of the main item.
	if len(words1) <= e.cfg.ShortNameWords && len(words2) >= e.cfg.LongNameWordMin {
		return true
	}

	if abs(len(words1)-len(words2)) > e.cfg.MaxWordCountGap {
		return false
	}

	// Two short names only merge when one of them carries a size or color
	// modifier.
	if len(words1) <= e.cfg.ShortNameWords && len(words2) <= e.cfg.ShortNameWords {
		return e.hasVariantKeyword(name1) || e.hasVariantKeyword(name2)
	}

	// Otherwise require meaningful word overlap: at least one shared word
	// covering half of the smaller word set.
	set1 := e.wordSet(words1)
	set2 := e.wordSet(words2)
	common := 0
	for w := range set1 {
		if set2[w] {
			common++
		}
	}
	smaller := len(set1)
	if len(set2) < smaller {
		smaller = len(set2)
	}
	return common >= 1 && common >= smaller/2
}

func (e *Extractor) hasVariantKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range e.cfg.SizeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range e.cfg.ColorKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (e *Extractor) wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	for _, filler := range e.cfg.FillerWords {
		delete(set, filler)
	}
	return set
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
