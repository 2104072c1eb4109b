// Package main provides the entry point for the receipt extractor server
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/Caia-Tech/receipt-extractor/internal/api"
	"github.com/Caia-Tech/receipt-extractor/internal/pipeline"
	"github.com/Caia-Tech/receipt-extractor/internal/temporal/activities"
	"github.com/Caia-Tech/receipt-extractor/internal/temporal/workflows"
	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
)

const taskQueue = "receipt-extractor"

func main() {
	logCfg := logging.DefaultLogConfig()
	logCfg.Level = getEnv("LOG_LEVEL", logCfg.Level)
	logCfg.Format = getEnv("LOG_FORMAT", logCfg.Format)
	if err := logging.SetupLogger(logCfg); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	cfg := pipeline.DefaultConfig()
	cfg.OCRLanguage = getEnv("OCR_LANGUAGE", cfg.OCRLanguage)
	processor := pipeline.New(cfg)

	// Temporal is optional; without it the async endpoint returns 503 and
	// synchronous processing still works.
	var temporalClient client.Client
	if getEnv("TEMPORAL_ENABLED", "true") == "true" {
		var err error
		temporalClient, err = client.Dial(client.Options{
			HostPort: getEnv("TEMPORAL_HOST", "localhost:7233"),
		})
		if err != nil {
			log.Printf("Temporal unavailable, async processing disabled: %v", err)
			temporalClient = nil
		} else {
			defer temporalClient.Close()

			w := worker.New(temporalClient, taskQueue, worker.Options{
				MaxConcurrentActivityExecutionSize: 10,
			})
			w.RegisterWorkflow(workflows.ReceiptProcessingWorkflow)

			acts := activities.New(processor)
			w.RegisterActivity(acts.RecognizeTextActivity)
			w.RegisterActivity(acts.ExtractReceiptActivity)

			go func() {
				if err := w.Run(worker.InterruptCh()); err != nil {
					log.Fatalf("Failed to start worker: %v", err)
				}
			}()
		}
	}

	// Initialize Fiber app with configuration
	app := fiber.New(fiber.Config{
		AppName:               "Receipt Extractor API",
		DisableStartupMessage: false,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "UTC",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: getEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	h := api.NewHandlers(processor, temporalClient, taskQueue)
	h.RegisterRoutes(app)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	port := getEnv("PORT", "8080")
	log.Printf("Starting receipt extractor server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
