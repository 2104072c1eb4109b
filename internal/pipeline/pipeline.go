// Package pipeline ties OCR profile selection, generic extraction and vendor
// specialization into a single receipt processor.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Caia-Tech/receipt-extractor/internal/extract"
	"github.com/Caia-Tech/receipt-extractor/internal/vendors"
	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
	"github.com/Caia-Tech/receipt-extractor/pkg/ocr"
	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// Config holds complete pipeline configuration.
type Config struct {
	// OCRLanguage is the tesseract language code.
	OCRLanguage string `json:"ocr_language"`
	// Profiles are the OCR configurations attempted per receipt.
	Profiles []ocr.Profile `json:"profiles"`
	// Extraction carries the pattern-engine thresholds.
	Extraction extract.Config `json:"extraction"`
	// NLPBacked asks for an NLP-assisted extraction path. Resolved once at
	// startup; the pattern path is complete on its own and is what runs when
	// no NLP backend is present.
	NLPBacked bool `json:"nlp_backed"`
	// PDFMaxPages caps how many pages of a PDF receipt are read.
	PDFMaxPages int `json:"pdf_max_pages"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		OCRLanguage: "eng",
		Profiles:    ocr.DefaultProfiles(),
		Extraction:  extract.DefaultConfig(),
		NLPBacked:   false,
		PDFMaxPages: 20,
	}
}

// Processor processes one receipt per call. It holds no mutable state, so
// concurrent calls are safe.
type Processor struct {
	selector    *ocr.Selector
	extractor   *extract.Extractor
	registry    *vendors.Registry
	pdfMaxPages int
	log         zerolog.Logger
}

// New builds a Processor backed by the local Tesseract engine.
func New(cfg Config) *Processor {
	engine := ocr.NewTesseractEngine()
	if cfg.OCRLanguage != "" {
		engine.Language = cfg.OCRLanguage
	}
	return NewWithEngine(engine, cfg)
}

// NewWithEngine builds a Processor around an arbitrary OCR engine.
func NewWithEngine(engine ocr.Engine, cfg Config) *Processor {
	log := logging.GetLogger("pipeline")
	if cfg.NLPBacked {
		log.Warn().Msg("no NLP backend available; pattern extraction remains authoritative")
	}
	return &Processor{
		selector:    ocr.NewSelector(engine, cfg.Profiles...),
		extractor:   extract.New(cfg.Extraction),
		registry:    vendors.NewRegistry(),
		pdfMaxPages: cfg.PDFMaxPages,
		log:         log,
	}
}

// RecognizeImage runs the OCR configuration selector over a raster image and
// returns the densest text. Failure here is the one fatal error class: no
// partial record is produced without input text.
func (p *Processor) RecognizeImage(ctx context.Context, image []byte) (string, error) {
	return p.selector.BestText(ctx, image)
}

// ProcessImage extracts a structured record from a receipt image.
func (p *Processor) ProcessImage(ctx context.Context, image []byte) (*receipt.Record, error) {
	text, err := p.RecognizeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(text), nil
}

// ProcessPDF extracts a structured record from a PDF receipt with an
// embedded text layer.
func (p *Processor) ProcessPDF(ctx context.Context, content []byte) (*receipt.Record, error) {
	text, err := p.RecognizePDF(ctx, content)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(text), nil
}

// ProcessText runs the generic extraction and then the vendor specialization
// layer over already-recognized text. It never fails; missing fields stay
// empty.
func (p *Processor) ProcessText(text string) *receipt.Record {
	rec := p.extractor.Extract(text)
	if name := p.registry.Apply(rec, text); name != "" {
		p.log.Info().
			Str("vendor", name).
			Int("items", len(rec.Items)).
			Msg("vendor specialization replaced generic items")
	}
	return rec
}
