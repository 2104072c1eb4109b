package api

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.temporal.io/sdk/client"

	"github.com/Caia-Tech/receipt-extractor/internal/pipeline"
	"github.com/Caia-Tech/receipt-extractor/internal/temporal/workflows"
	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

// maxUploadSize caps receipt uploads (5MB, plenty for a receipt scan).
const maxUploadSize = 5 * 1024 * 1024

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"tiff": true,
	"bmp":  true,
	"pdf":  true,
}

// Handlers contains the HTTP handlers for the API
type Handlers struct {
	processor *pipeline.Processor
	temporal  client.Client
	taskQueue string
	log       zerolog.Logger
}

// NewHandlers creates a new handlers instance. The temporal client may be
// nil, which disables the async endpoint.
func NewHandlers(processor *pipeline.Processor, temporalClient client.Client, taskQueue string) *Handlers {
	return &Handlers{
		processor: processor,
		temporal:  temporalClient,
		taskQueue: taskQueue,
		log:       logging.GetLogger("api"),
	}
}

// RegisterRoutes attaches all routes to the app.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	v1 := app.Group("/api/v1")
	v1.Post("/receipts", h.ProcessReceipt)
	v1.Post("/receipts/text", h.ProcessText)
	v1.Post("/receipts/async", h.ProcessReceiptAsync)
}

// Health returns the service health status
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "receipt-extractor",
		"version":   "0.1.0",
		"timestamp": time.Now().UTC(),
	})
}

// ProcessResponse wraps a processed receipt record.
type ProcessResponse struct {
	ReceiptID string          `json:"receipt_id"`
	Record    *receipt.Record `json:"record"`
}

// ProcessReceipt handles a multipart receipt upload (image or PDF) and
// returns the structured record.
func (h *Handlers) ProcessReceipt(c *fiber.Ctx) error {
	content, ext, ok, uploadErr := h.readUpload(c)
	if !ok {
		return uploadErr
	}

	var (
		rec *receipt.Record
		err error
	)
	if ext == "pdf" {
		rec, err = h.processor.ProcessPDF(c.Context(), content)
	} else {
		rec, err = h.processor.ProcessImage(c.Context(), content)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("receipt processing failed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Failed to process receipt",
			"details": err.Error(),
		})
	}

	return c.JSON(ProcessResponse{
		ReceiptID: uuid.New().String(),
		Record:    rec,
	})
}

// ProcessTextRequest carries already-recognized receipt text.
type ProcessTextRequest struct {
	Text string `json:"text"`
}

// ProcessText extracts a structured record from raw receipt text, skipping
// OCR. Used by comparison harnesses and for debugging extraction.
func (h *Handlers) ProcessText(c *fiber.Ctx) error {
	var req ProcessTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Field 'text' is required",
		})
	}

	return c.JSON(ProcessResponse{
		ReceiptID: uuid.New().String(),
		Record:    h.processor.ProcessText(req.Text),
	})
}

// AsyncResponse identifies a started processing workflow.
type AsyncResponse struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// ProcessReceiptAsync starts a processing workflow for the uploaded receipt
// and returns its identifiers.
func (h *Handlers) ProcessReceiptAsync(c *fiber.Ctx) error {
	if h.temporal == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Async processing is not enabled",
		})
	}

	content, ext, ok, uploadErr := h.readUpload(c)
	if !ok {
		return uploadErr
	}

	workflowID := fmt.Sprintf("receipt-%s", uuid.New().String())
	we, err := h.temporal.ExecuteWorkflow(c.Context(), client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: h.taskQueue,
	}, workflows.ReceiptProcessingWorkflow, workflows.ReceiptInput{
		Filename:    workflowID,
		ContentType: ext,
		Content:     content,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to start workflow")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to start receipt processing",
			"details": err.Error(),
		})
	}

	h.log.Info().Str("workflow_id", workflowID).Msg("started receipt processing workflow")

	return c.Status(fiber.StatusAccepted).JSON(AsyncResponse{
		WorkflowID: we.GetID(),
		RunID:      we.GetRunID(),
	})
}

// readUpload validates and reads the multipart "file" field. On failure the
// error response is already written; the caller returns the error as-is.
func (h *Handlers) readUpload(c *fiber.Ctx) ([]byte, string, bool, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "No file uploaded or invalid file format",
			"details": err.Error(),
		})
	}

	if file.Size > maxUploadSize {
		return nil, "", false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large: %d bytes. Maximum size is %d bytes", file.Size, maxUploadSize),
		})
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !allowedExtensions[ext] {
		return nil, "", false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File type not allowed. Use PNG, JPG, JPEG, GIF, TIFF, BMP, or PDF",
		})
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to read uploaded file",
			"details": err.Error(),
		})
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to read uploaded file",
			"details": err.Error(),
		})
	}

	return content, ext, true, nil
}
