// Package vendors layers vendor-specific re-parsing on top of the generic
// extraction result. A specialization re-reads the raw text with stricter
// patterns and overwrites the fields it produces; fields it does not emit
// are inherited from the generic pass.
package vendors

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// Specialization is one vendor-specific re-parser. Matches decides whether
// it applies; Enhance rewrites the record in place. Enhance replaces the
// item list and tax details wholesale and merges everything else.
type Specialization interface {
	Name() string
	Matches(rec *receipt.Record, text string) bool
	Enhance(rec *receipt.Record, text string)
}

// Registry holds the known specializations in match priority order.
type Registry struct {
	specs []Specialization
	log   zerolog.Logger
}

// NewRegistry returns a registry with the built-in specializations. Passing
// explicit specializations overrides the default set.
func NewRegistry(specs ...Specialization) *Registry {
	if len(specs) == 0 {
		specs = []Specialization{NewWalmart()}
	}
	return &Registry{
		specs: specs,
		log:   logging.GetLogger("vendors"),
	}
}

// Apply runs the first matching specialization and returns its name, or ""
// when the record stays generic. At most one specialization runs per record;
// there is no backtracking to the generic result afterwards.
func (r *Registry) Apply(rec *receipt.Record, text string) string {
	for _, spec := range r.specs {
		if spec.Matches(rec, text) {
			spec.Enhance(rec, text)
			r.log.Debug().
				Str("vendor", spec.Name()).
				Int("items", len(rec.Items)).
				Msg("vendor specialization applied")
			return spec.Name()
		}
	}
	return ""
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
