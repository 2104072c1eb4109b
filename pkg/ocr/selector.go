package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
)

// Profile is one Tesseract configuration to attempt. Receipts respond very
// differently to page segmentation modes, so several are tried and the best
// result kept.
type Profile struct {
	Name string `json:"name"`
	// PageSegMode is the Tesseract PSM number (6 = uniform block,
	// 4 = single column, 3 = fully automatic).
	PageSegMode int `json:"page_seg_mode"`
	// PreserveSpaces keeps interword spacing, which the column-based item
	// patterns depend on.
	PreserveSpaces bool `json:"preserve_spaces"`
}

// DefaultProfiles returns the configuration set tried for every receipt, in
// attempt order.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "block", PageSegMode: 6, PreserveSpaces: true},
		{Name: "column", PageSegMode: 4, PreserveSpaces: true},
		{Name: "auto", PageSegMode: 3, PreserveSpaces: true},
	}
}

// Engine recognizes text in a raster image under a given profile. The real
// implementation wraps Tesseract; tests substitute a stub.
type Engine interface {
	Recognize(ctx context.Context, image []byte, profile Profile) (string, error)
}

// Selector runs recognition under every profile and keeps the text with the
// most non-whitespace characters.
type Selector struct {
	engine   Engine
	profiles []Profile
}

// NewSelector creates a Selector. With no profiles given the default set is
// used.
func NewSelector(engine Engine, profiles ...Profile) *Selector {
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	return &Selector{engine: engine, profiles: profiles}
}

// BestText recognizes the image under every profile and returns the densest
// result. It fails only when every profile fails; a single working profile
// is enough.
func (s *Selector) BestText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("no image content provided for OCR")
	}

	logger := logging.GetLogger("ocr-selector")

	best := ""
	bestScore := -1
	var errs []error

	for _, profile := range s.profiles {
		text, err := s.engine.Recognize(ctx, image, profile)
		if err != nil {
			logger.Warn().
				Str("profile", profile.Name).
				Err(err).
				Msg("OCR profile failed")
			errs = append(errs, fmt.Errorf("profile %s: %w", profile.Name, err))
			continue
		}

		score := nonWhitespaceLen(text)
		logger.Debug().
			Str("profile", profile.Name).
			Int("score", score).
			Msg("OCR profile result")
		if score > bestScore {
			best = text
			bestScore = score
		}
	}

	if bestScore < 0 {
		return "", fmt.Errorf("all OCR profiles failed: %w", errors.Join(errs...))
	}
	return best, nil
}

func nonWhitespaceLen(text string) int {
	n := 0
	for _, field := range strings.Fields(text) {
		n += len(field)
	}
	return n
}
