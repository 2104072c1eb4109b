//go:build !ocr
// +build !ocr

package ocr

import (
	"context"
	"fmt"
)

// TesseractEngine is the fallback when Tesseract is not available.
type TesseractEngine struct {
	Language string
}

// NewTesseractEngine creates an engine with default settings (fallback version)
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{Language: "eng"}
}

// Recognize returns an error indicating OCR is not available
func (t *TesseractEngine) Recognize(ctx context.Context, image []byte, profile Profile) (string, error) {
	return "", fmt.Errorf("OCR functionality requires Tesseract to be installed. Install with: brew install tesseract (macOS) or sudo apt install tesseract-ocr (Ubuntu), then build with -tags ocr")
}
