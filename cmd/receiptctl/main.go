// Package main provides the receiptctl command line tool
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Caia-Tech/receipt-extractor/internal/pipeline"
	"github.com/Caia-Tech/receipt-extractor/pkg/logging"
	"github.com/Caia-Tech/receipt-extractor/pkg/receipt"
)

var (
	asJSON   bool
	language string
)

func main() {
	root := &cobra.Command{
		Use:   "receiptctl",
		Short: "Extract structured data from retail receipts",
	}

	processCmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Process a receipt image, PDF or text file",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}
	processCmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	processCmd.Flags().StringVar(&language, "lang", "eng", "tesseract language code")
	root.AddCommand(processCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	logCfg := logging.DefaultLogConfig()
	logCfg.Level = "warn"
	logCfg.Format = "pretty"
	if err := logging.SetupLogger(logCfg); err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	cfg := pipeline.DefaultConfig()
	cfg.OCRLanguage = language
	processor := pipeline.New(cfg)

	var rec *receipt.Record
	ctx := context.Background()
	switch strings.ToLower(filepath.Ext(args[0])) {
	case ".pdf":
		rec, err = processor.ProcessPDF(ctx, content)
	case ".txt":
		rec = processor.ProcessText(string(content))
	default:
		rec, err = processor.ProcessImage(ctx, content)
	}
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printRecord(rec)
	return nil
}

func printRecord(rec *receipt.Record) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("RECEIPT DATA")
	fmt.Println(strings.Repeat("=", 50))

	if rec.Vendor != "" {
		fmt.Printf("Vendor:  %s\n", rec.Vendor)
	}
	for _, d := range rec.Dates {
		fmt.Printf("Date:    %s\n", d)
	}
	if rec.StoreInfo.StoreNumber != "" {
		fmt.Printf("Store:   #%s\n", rec.StoreInfo.StoreNumber)
	}
	if rec.StoreInfo.Phone != "" {
		fmt.Printf("Phone:   %s\n", rec.StoreInfo.Phone)
	}

	if len(rec.Items) > 0 {
		fmt.Printf("\nItems (%d):\n", len(rec.Items))
		for _, item := range rec.Items {
			fmt.Printf("  %-36s %8s\n", item.Name, item.Price.StringFixed(2))
		}
	}

	fmt.Println()
	if rec.Financials.Subtotal != nil {
		fmt.Printf("Subtotal: %s\n", rec.Financials.Subtotal.StringFixed(2))
	}
	for _, tax := range rec.Financials.Tax {
		fmt.Printf("Tax:      %s\n", tax.StringFixed(2))
	}
	if rec.Financials.Total != nil {
		fmt.Printf("Total:    %s\n", rec.Financials.Total.StringFixed(2))
	} else if probable := rec.ProbableTotal(); probable != nil {
		fmt.Printf("Total:    %s (probable)\n", probable.StringFixed(2))
	}
	if rec.PaymentMethod != "" {
		fmt.Printf("Payment:  %s\n", rec.PaymentMethod)
	}
}
