package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// RecognizePDF pulls the embedded text layer out of a PDF receipt,
// short-circuiting the OCR round trip. PDFs without a text layer are an
// input error; render them to an image and use ProcessImage instead.
func (p *Processor) RecognizePDF(ctx context.Context, content []byte) (string, error) {
	if len(content) < 4 || string(content[:4]) != "%PDF" {
		return "", fmt.Errorf("not a valid PDF file")
	}

	reader := bytes.NewReader(content)
	doc, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	pages := doc.NumPage()
	if p.pdfMaxPages > 0 && pages > p.pdfMaxPages {
		pages = p.pdfMaxPages
	}

	var builder strings.Builder
	for i := 1; i <= pages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			p.log.Debug().Int("page", i).Err(err).Msg("skipping unreadable PDF page")
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return text, nil
}
