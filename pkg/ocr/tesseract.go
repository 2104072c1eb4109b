//go:build ocr
// +build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text using a local Tesseract installation.
type TesseractEngine struct {
	Language string // Tesseract language code (e.g., "eng", "eng+fra")
}

// NewTesseractEngine creates an engine with default settings
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{
		Language: "eng",
	}
}

// Recognize extracts text from image content under the given profile.
func (t *TesseractEngine) Recognize(ctx context.Context, image []byte, profile Profile) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("no image content provided for OCR")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return "", fmt.Errorf("failed to set OCR language %q: %w", t.Language, err)
	}

	if err := client.SetPageSegMode(gosseract.PageSegMode(profile.PageSegMode)); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode %d: %w", profile.PageSegMode, err)
	}

	if profile.PreserveSpaces {
		if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
			return "", fmt.Errorf("failed to set tesseract variable: %w", err)
		}
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set OCR image data: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR text extraction failed: %w", err)
	}

	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return text, nil
}
