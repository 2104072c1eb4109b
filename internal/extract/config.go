package extract

// Config holds the extraction thresholds and keyword tables. The numeric
// values are tuned against real receipt scans; treat them as knobs, not
// derived quantities.
type Config struct {
	// HeaderFooterMargin is the number of leading and trailing lines skipped
	// during item extraction when the receipt is longer than MinWindowLines.
	HeaderFooterMargin int `json:"header_footer_margin"`
	MinWindowLines     int `json:"min_window_lines"`

	// VendorScanLines bounds the known-vendor search window.
	VendorScanLines int `json:"vendor_scan_lines"`
	// StoreScanLines bounds the address/phone search window.
	StoreScanLines int `json:"store_scan_lines"`

	// MinLineLen drops very short fragments before classification.
	MinLineLen int `json:"min_line_len"`
	// FallbackMinResidual is the minimum name length left after stripping the
	// price token for the generic fallback to emit an item.
	FallbackMinResidual int `json:"fallback_min_residual"`
	// MergeMinResidual is the minimum residual length for a continuation line
	// to contribute to a merged item name.
	MergeMinResidual int `json:"merge_min_residual"`

	// Similarity heuristic knobs.
	ShortNameWords  int `json:"short_name_words"`
	LongNameWordMin int `json:"long_name_word_min"`
	MaxWordCountGap int `json:"max_word_count_gap"`

	KnownVendors  []string `json:"known_vendors"`
	Stoplist      []string `json:"stoplist"`
	SizeKeywords  []string `json:"size_keywords"`
	ColorKeywords []string `json:"color_keywords"`
	FillerWords   []string `json:"filler_words"`
}

// DefaultConfig returns the standard extraction configuration.
func DefaultConfig() Config {
	return Config{
		HeaderFooterMargin:  5,
		MinWindowLines:      10,
		VendorScanLines:     5,
		StoreScanLines:      10,
		MinLineLen:          2,
		FallbackMinResidual: 2,
		MergeMinResidual:    1,
		ShortNameWords:      2,
		LongNameWordMin:     3,
		MaxWordCountGap:     2,
		KnownVendors: []string{
			"walmart", "target", "kroger", "costco",
			"walgreens", "cvs", "safeway", "whole foods",
		},
		Stoplist: []string{
			"total", "subtotal", "tax", "balance", "change", "cash",
			"credit", "payment", "amount", "due", "paid", "card",
			"receipt", "store", "date", "time",
		},
		SizeKeywords:  []string{"size", "small", "medium", "large", "xl", "xxl"},
		ColorKeywords: []string{"red", "blue", "green", "black", "white", "yellow"},
		FillerWords:   []string{"a", "an", "the", "with", "and", "or", "for"},
	}
}
