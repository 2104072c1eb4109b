package activities

import (
	"context"
	"strings"

	"go.temporal.io/sdk/temporal"

	"github.com/Caia-Tech/receipt-extractor/internal/pipeline"
	"github.com/Caia-Tech/receipt-extractor/internal/temporal/workflows"
	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// Activities wraps the receipt processor for workflow execution.
type Activities struct {
	processor *pipeline.Processor
}

// New creates the activity set around a shared processor.
func New(processor *pipeline.Processor) *Activities {
	return &Activities{processor: processor}
}

// RecognizeTextActivity turns an uploaded receipt (image or PDF) into raw
// text using the best OCR profile.
func (a *Activities) RecognizeTextActivity(ctx context.Context, input workflows.ReceiptInput) (string, error) {
	if len(input.Content) == 0 {
		return "", temporal.NewNonRetryableApplicationError("no receipt content provided", "InputError", nil)
	}
	if strings.EqualFold(input.ContentType, "pdf") {
		return a.processor.RecognizePDF(ctx, input.Content)
	}
	return a.processor.RecognizeImage(ctx, input.Content)
}

// ExtractReceiptActivity builds the structured record from recognized text.
// Extraction itself cannot fail; the error return exists for the activity
// contract.
func (a *Activities) ExtractReceiptActivity(ctx context.Context, text string) (*receipt.Record, error) {
	return a.processor.ProcessText(text), nil
}
