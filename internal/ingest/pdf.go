package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

// TextExtractor pulls plain text out of an uploaded file on disk.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// PDFExtractor reads per-page text from a PDF. Pages that cannot be parsed
// are skipped with a warning rather than failing the whole document.
type PDFExtractor struct{}

var _ TextExtractor = PDFExtractor{}

// Extract returns the document text with a "--- Page N ---" marker before
// each page.
func (PDFExtractor) Extract(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			logger.RAGWarn("Skipping unreadable page %d", pageNum)
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.RAGWarn("Failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n", pageNum)
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
