package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// ReceiptInput is the payload for receipt processing workflows.
type ReceiptInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"` // "pdf" or an image extension
	Content     []byte `json:"content"`
}

// Activity names for registration
const (
	RecognizeTextActivityName  = "RecognizeTextActivity"
	ExtractReceiptActivityName = "ExtractReceiptActivity"
)

// ReceiptProcessingWorkflow recognizes text from an uploaded receipt and
// extracts the structured record. Recognition is retried; missing input is
// non-retryable.
func ReceiptProcessingWorkflow(ctx workflow.Context, input ReceiptInput) (*receipt.Record, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting receipt processing", "filename", input.Filename, "type", input.ContentType)

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        3,
			InitialInterval:        1 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        30 * time.Second,
			NonRetryableErrorTypes: []string{"InputError"},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var text string
	if err := workflow.ExecuteActivity(ctx, RecognizeTextActivityName, input).Get(ctx, &text); err != nil {
		return nil, err
	}

	var rec receipt.Record
	if err := workflow.ExecuteActivity(ctx, ExtractReceiptActivityName, text).Get(ctx, &rec); err != nil {
		return nil, err
	}

	logger.Info("Receipt processing completed", "vendor", rec.Vendor, "items", len(rec.Items))
	return &rec, nil
}
